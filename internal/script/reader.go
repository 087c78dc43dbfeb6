package script

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type row map[string]string

// records is a decoded script: normalized column names in a stable order and
// one row per record.
type records struct {
	columns []string
	rows    []row
}

// Load reads the script at path, choosing a reader from the file extension.
func Load(path string, opts Options) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var recs records
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		recs, err = decodeJSON(data)
	case ".csv", ".tsv", ".txt":
		delim := opts.Delimiter
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			delim = '\t'
		}
		recs, err = decodeCSV(bytes.NewReader(data), delim)
	case ".yaml", ".yml":
		recs, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode script %s: %w", filepath.Base(path), err)
	}
	s, err := fromRecords(recs, opts.DialogueColumn)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

func fromRecords(recs records, column string) (*Script, error) {
	column = normalizeHeader(column)
	if column == "" {
		return nil, fmt.Errorf("%w: dialogue column not set", ErrMissingColumn)
	}
	s := &Script{Column: column}
	if len(recs.rows) == 0 {
		return s, nil
	}

	s.Columns = recs.columns
	for _, required := range []string{ColumnScene, ColumnIn, ColumnOut, ColumnCharacter, column} {
		if !slices.Contains(s.Columns, required) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	for i, r := range recs.rows {
		iv := Intervention{
			Row:       i + 1,
			Scene:     strings.TrimSpace(r[ColumnScene]),
			Character: CharacterKey(r[ColumnCharacter]),
			Text:      strings.TrimSpace(r[column]),
			InCode:    strings.TrimSpace(r[ColumnIn]),
			OutCode:   strings.TrimSpace(r[ColumnOut]),
		}
		if iv.Scene == "" && iv.Character == "" && iv.Text == "" && iv.InCode == "" && iv.OutCode == "" {
			continue
		}
		s.Interventions = append(s.Interventions, iv)
	}
	return s, nil
}

func normalizeHeader(name string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func decodeCSV(r io.Reader, delim rune) (records, error) {
	reader := csv.NewReader(r)
	if delim != 0 {
		reader.Comma = delim
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return records{}, nil
	}
	if err != nil {
		return records{}, fmt.Errorf("read header: %w", err)
	}
	var recs records
	for i := range header {
		header[i] = normalizeHeader(header[i])
		if header[i] != "" && !slices.Contains(recs.columns, header[i]) {
			recs.columns = append(recs.columns, header[i])
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records{}, err
		}
		r := make(row, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			r[name] = record[i]
		}
		recs.rows = append(recs.rows, r)
	}
	return recs, nil
}

func decodeJSON(data []byte) (records, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return records{}, nil
	}
	var raw []map[string]any
	if trimmed[0] == '{' {
		var wrapped struct {
			Rows []map[string]any `json:"rows"`
		}
		if err := decodeJSONNumbers(trimmed, &wrapped); err != nil {
			return records{}, err
		}
		raw = wrapped.Rows
	} else if err := decodeJSONNumbers(trimmed, &raw); err != nil {
		return records{}, err
	}
	return toRecords(raw), nil
}

func decodeJSONNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func decodeYAML(data []byte) (records, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return records{}, err
	}
	return toRecords(raw), nil
}

// toRecords converts decoded objects into rows. Object keys carry no order, so
// columns are listed by name.
func toRecords(raw []map[string]any) records {
	recs := records{rows: make([]row, 0, len(raw))}
	for _, item := range raw {
		r := make(row, len(item))
		for key, value := range item {
			name := normalizeHeader(key)
			if !slices.Contains(recs.columns, name) {
				recs.columns = append(recs.columns, name)
			}
			r[name] = cellString(value)
		}
		recs.rows = append(recs.rows, r)
	}
	slices.Sort(recs.columns)
	return recs
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
