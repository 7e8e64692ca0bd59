package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

// Format is the encoding of a catalog table
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// formatFor picks the table format from the location's extension; CSV is the default
func formatFor(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 && strings.Contains(location, "://") {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// record is one table row keyed by column name
type record struct {
	line   int
	values map[string]string
}

// table is a decoded catalog source. Columns are addressed by name, never by position.
type table struct {
	columns map[string]bool
	rows    []record
}

// decodeTable decodes data in the given format and checks that every required column exists.
// CSV columns come from the header; YAML rows carry their own keys, so each row is checked.
func decodeTable(data []byte, format Format, required []string) (*table, error) {
	if format == FormatYAML {
		t, err := decodeYAML(data)
		if err != nil {
			return nil, err
		}
		for _, rec := range t.rows {
			if missing := missingColumns(required, rec.has); len(missing) > 0 {
				return nil, fmt.Errorf("%w: row %d missing required column(s) %s", domain.ErrSchemaMismatch, rec.line, strings.Join(missing, ", "))
			}
		}
		return t, nil
	}

	t, err := decodeCSV(data)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(required, func(col string) bool { return t.columns[col] }); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s) %s", domain.ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	return t, nil
}

func missingColumns(required []string, present func(string) bool) []string {
	var missing []string
	for _, col := range required {
		if !present(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

func decodeCSV(data []byte) (*table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &table{columns: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrSchemaMismatch, err)
	}

	t := &table{columns: make(map[string]bool, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(col)
		header[i] = col
		if col == "" {
			continue
		}
		if t.columns[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", domain.ErrSchemaMismatch, col)
		}
		t.columns[col] = true
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
		}

		line, _ := reader.FieldPos(0)
		rec := record{line: line, values: make(map[string]string, len(header))}
		for i, col := range header {
			if col != "" {
				rec.values[col] = strings.TrimSpace(fields[i])
			}
		}
		t.rows = append(t.rows, rec)
	}

	return t, nil
}

// decodeYAML accepts a list of mappings, one per row; an empty list is an empty table
func decodeYAML(data []byte) (*table, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", domain.ErrSchemaMismatch, err)
	}

	t := &table{columns: make(map[string]bool)}
	for i, row := range rows {
		rec := record{line: i + 1, values: make(map[string]string, len(row))}
		for col, v := range row {
			col = strings.TrimSpace(col)
			t.columns[col] = true
			if v == nil {
				rec.values[col] = ""
				continue
			}
			rec.values[col] = strings.TrimSpace(fmt.Sprint(v))
		}
		t.rows = append(t.rows, rec)
	}

	return t, nil
}

func (r record) has(col string) bool {
	_, ok := r.values[col]
	return ok
}

func (r record) text(col string) string {
	return r.values[col]
}

// number parses a numeric cell; "$1,200" style values are accepted and empty means 0
func (r record) number(col string) (float64, error) {
	raw := strings.TrimSpace(r.values[col])
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d column %s: %q is not a number", domain.ErrSchemaMismatch, r.line, col, r.values[col])
	}
	return v, nil
}

// flag parses a yes/no cell; empty means false
func (r record) flag(col string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(r.values[col])) {
	case "", "no", "n", "false", "0":
		return false, nil
	case "yes", "y", "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: row %d column %s: %q is not a yes/no value", domain.ErrSchemaMismatch, r.line, col, r.values[col])
	}
}
