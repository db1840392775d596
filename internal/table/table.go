// Package table holds the in-memory table model that row filtering runs on.
//
// A Table is an ordered list of named columns of equal length. Rows have no
// identity beyond their position, so a table's index is always 0..n-1 and
// any new table built from it is renumbered by construction.
//
// Category columns carry a declared category list alongside their values.
// The declared list may contain categories no row uses; DropRows prunes
// those after filtering.
package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTable is returned by Validate for structurally broken tables.
var ErrInvalidTable = errors.New("invalid table")

// ColumnKind is the declared type of a column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindCategory
)

var kindNames = map[ColumnKind]string{
	KindText:     "text",
	KindNumber:   "number",
	KindCategory: "category",
}

func (k ColumnKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ColumnKind(%d)", int(k))
}

// MarshalText encodes the kind by name for JSON and YAML.
func (k ColumnKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown column kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText accepts the names produced by MarshalText. An empty
// string decodes as KindText.
func (k *ColumnKind) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if s == "" {
		*k = KindText
		return nil
	}
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown column kind %q", s)
}

// Column is a named sequence of cell values. An empty string is a missing
// value; in a category column it never counts as a category.
type Column struct {
	Name       string     `json:"name"`
	Kind       ColumnKind `json:"kind"`
	Values     []string   `json:"values"`
	Categories []string   `json:"categories,omitempty"` // declared set, KindCategory only
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Columns []Column `json:"columns"`
}

// New builds a table from columns without copying them.
func New(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// NumRows returns the number of rows. A nil table or a table without
// columns has zero rows.
func (t *Table) NumRows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks that column names are present and unique and that every
// column has the same number of rows.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidTable)
	}

	seen := make(map[string]bool, len(t.Columns))
	rows := t.NumRows()
	for i, c := range t.Columns {
		if c.Name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidTable, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidTable, c.Name)
		}
		seen[c.Name] = true

		if len(c.Values) != rows {
			return fmt.Errorf("%w: column %q has %d rows, want %d", ErrInvalidTable, c.Name, len(c.Values), rows)
		}
		if _, ok := kindNames[c.Kind]; !ok {
			return fmt.Errorf("%w: column %q has unknown kind %d", ErrInvalidTable, c.Name, int(c.Kind))
		}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name:       c.Name,
			Kind:       c.Kind,
			Values:     append([]string(nil), c.Values...),
			Categories: append([]string(nil), c.Categories...),
		}
	}
	return out
}

// Equal reports whether a and b have the same columns, kinds, values and
// declared categories. Nil and empty slices compare equal.
func Equal(a, b *Table) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Columns) != len(b.Columns) {
		return false
	}
	for i := range a.Columns {
		ca, cb := a.Columns[i], b.Columns[i]
		if ca.Name != cb.Name || ca.Kind != cb.Kind {
			return false
		}
		if !equalStrings(ca.Values, cb.Values) || !equalStrings(ca.Categories, cb.Categories) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
