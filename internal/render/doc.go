// Package render turns take plans into tables.
//
// Every report is first shaped into a Table of headers and string rows, then
// rendered with go-pretty as a rounded text table, CSV, Markdown or HTML.
// JSON output bypasses tables and encodes the report values directly.
package render
