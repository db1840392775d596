package table

import "github.com/JonMunkholm/droprows/internal/rowrange"

// DropRows returns a new table without the rows marked in mask.
//
// Surviving rows keep their relative order and are renumbered from 0.
// Mask entries past the last row are ignored and missing entries count as
// false. Category columns keep only the declared categories that still
// occur in a surviving row.
//
// A table with no rows, or a mask that marks none of the table's rows,
// returns the input as is: nothing is dropped, so declared categories are
// left alone too. The input table is never modified.
func DropRows(t *Table, mask rowrange.Mask) *Table {
	n := t.NumRows()
	if n == 0 {
		return t
	}

	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i < len(mask) && mask[i] {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == n {
		return t
	}

	out := &Table{Columns: make([]Column, len(t.Columns))}
	for c, col := range t.Columns {
		values := make([]string, len(keep))
		for j, i := range keep {
			values[j] = col.Values[i]
		}

		next := Column{Name: col.Name, Kind: col.Kind, Values: values}
		if col.Kind == KindCategory {
			next.Categories = presentCategories(col.Categories, values)
		} else if col.Categories != nil {
			next.Categories = append([]string(nil), col.Categories...)
		}
		out.Columns[c] = next
	}
	return out
}

// presentCategories returns the categories used by values: declared ones
// first in declared order, then undeclared ones in order of appearance.
func presentCategories(declared, values []string) []string {
	present := make(map[string]bool, len(declared))
	var appearance []string
	for _, v := range values {
		if v == "" || present[v] {
			continue
		}
		present[v] = true
		appearance = append(appearance, v)
	}

	out := make([]string, 0, len(present))
	listed := make(map[string]bool, len(declared))
	for _, c := range declared {
		if present[c] && !listed[c] {
			out = append(out, c)
			listed[c] = true
		}
	}
	for _, v := range appearance {
		if !listed[v] {
			out = append(out, v)
		}
	}
	return out
}
