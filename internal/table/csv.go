package table

// csv.go reads and writes tables as CSV with a header row.
//
// Input is cleaned before parsing:
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF) from Windows exports is dropped
//   - invalid UTF-8 bytes become U+FFFD
//
// Column kinds are inferred: columns named in ReadOptions.Categories become
// category columns, columns whose non-empty cells all parse as numbers
// become number columns, everything else is text.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidCSV is returned when input cannot be read as a table.
var ErrInvalidCSV = errors.New("invalid csv")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions controls how ReadCSV types columns.
type ReadOptions struct {
	// Categories names the columns to read as category columns. Their
	// declared categories are the distinct non-empty values, sorted.
	Categories []string
}

// ReadCSV reads a header row followed by data rows. Short rows are padded
// with empty cells; rows longer than the header are rejected.
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = sanitizeUTF8(bytes.TrimPrefix(data, utf8BOM))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidCSV)
	}

	header := records[0]
	columns := make([]Column, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, fmt.Errorf("%w: header column %d is empty", ErrInvalidCSV, i+1)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate header %q", ErrInvalidCSV, name)
		}
		index[name] = i
		columns[i] = Column{Name: name, Values: make([]string, 0, len(records)-1)}
	}

	for line, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrInvalidCSV, line+2, len(rec), len(header))
		}
		for i := range columns {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			columns[i].Values = append(columns[i].Values, v)
		}
	}

	categorical := make(map[string]bool, len(opts.Categories))
	for _, name := range opts.Categories {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: category column %q not found", ErrInvalidCSV, name)
		}
		categorical[name] = true
	}

	for i := range columns {
		col := &columns[i]
		switch {
		case categorical[col.Name]:
			col.Kind = KindCategory
			col.Categories = distinctSorted(col.Values)
		case isNumeric(col.Values):
			col.Kind = KindNumber
		default:
			col.Kind = KindText
		}
	}

	return &Table{Columns: columns}, nil
}

// WriteCSV writes t with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for r := 0; r < t.NumRows(); r++ {
		for i, c := range t.Columns {
			row[i] = c.Values[r]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", r+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// isNumeric reports whether every non-empty value parses as a number and
// at least one value is non-empty.
func isNumeric(values []string) bool {
	seen := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func distinctSorted(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// sanitizeUTF8 replaces invalid UTF-8 bytes with U+FFFD.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}
	return buf.Bytes()
}
