// Package language maps language codes and names used for dubbing scripts.
//
// Configuration accepts ISO 639-1, ISO 639-2 or a plain language word for
// input.expected_language; everything is folded to ISO 639-1 so it compares
// directly against detection results.
package language
