package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Alignment of a column's cells.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table is a titled grid of string cells.
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []Alignment
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Render renders t in one of the tabular formats.
func (t Table) Render(format string) (string, error) {
	columns := len(t.Headers)
	if columns == 0 {
		return "", nil
	}
	if format == FormatCSV {
		return t.renderCSV()
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = t.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(t.Aligns) && t.Aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	switch format {
	case FormatTable, "":
		return tw.Render(), nil
	case FormatMarkdown:
		return tw.RenderMarkdown(), nil
	case FormatHTML:
		return tw.RenderHTML(), nil
	default:
		return "", fmt.Errorf("render: unsupported table format %q", format)
	}
}

// renderCSV writes RFC 4180 records. go-pretty escapes separators inside
// cells with a backslash, which standard CSV readers keep as literal text.
func (t Table) renderCSV() (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(t.Headers); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = row[i]
			}
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("render csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Write renders tables one after another, each under its title. Tables without
// rows are skipped unless they are the only one.
func Write(w io.Writer, format string, tables ...Table) error {
	written := 0
	for _, t := range tables {
		if len(t.Rows) == 0 && len(tables) > 1 {
			continue
		}
		body, err := t.Render(format)
		if err != nil {
			return err
		}
		var b strings.Builder
		if written > 0 {
			b.WriteString("\n")
		}
		if t.Title != "" {
			switch format {
			case FormatMarkdown:
				fmt.Fprintf(&b, "## %s\n\n", t.Title)
			case FormatHTML:
				fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(t.Title))
			case FormatCSV:
			default:
				fmt.Fprintf(&b, "%s\n", t.Title)
			}
		}
		b.WriteString(body)
		b.WriteString("\n")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		written++
	}
	return nil
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
