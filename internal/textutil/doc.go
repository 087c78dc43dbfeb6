// Package textutil sanitizes names derived from script files so they can be
// used as path segments for report output.
package textutil
