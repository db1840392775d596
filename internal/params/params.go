// Package params defines the stored parameter shapes of a drop-rows step
// and migrates older shapes to the current one.
//
// Version 1 stored a single range as two integers, first_row and last_row.
// Version 2 stores a range spec string, rows. Migration is a pure mapping
// that runs when parameters are loaded; the row filter only ever sees a
// rows string.
package params

import (
	"fmt"

	"github.com/JonMunkholm/droprows/internal/rowrange"
)

// CurrentVersion is the version written by Params.Stored.
const CurrentVersion = 2

// Params are the parameters the row filter consumes.
type Params struct {
	Rows string `json:"rows" yaml:"rows"`
}

// Stored is the persisted form of Params. It accepts every version ever
// written. FirstRow and LastRow are 1-based and inclusive; nil or zero
// means unset.
type Stored struct {
	Version  int    `json:"version,omitempty" yaml:"version,omitempty"`
	Rows     string `json:"rows" yaml:"rows"`
	FirstRow *int   `json:"first_row,omitempty" yaml:"first_row,omitempty"`
	LastRow  *int   `json:"last_row,omitempty" yaml:"last_row,omitempty"`
}

// Stored returns p in the current persisted shape.
func (p Params) Stored() Stored {
	return Stored{Version: CurrentVersion, Rows: p.Rows}
}

// NeedsMigration reports whether s predates the current version or still
// carries legacy fields.
func (s Stored) NeedsMigration() bool {
	return s.Version < CurrentVersion || s.FirstRow != nil || s.LastRow != nil
}

// Migrate maps any stored version to Params.
//
// A non-empty rows string always wins and legacy fields are discarded.
// Otherwise, when both first_row and last_row are set, rows becomes
// "first-last". The synthesized spec is not validated here; parsing it
// reports any problem the same way as a typed spec.
func Migrate(s Stored) Params {
	if s.Rows != "" {
		return Params{Rows: s.Rows}
	}
	if isSet(s.FirstRow) && isSet(s.LastRow) {
		return Params{Rows: fmt.Sprintf("%d-%d", *s.FirstRow, *s.LastRow)}
	}
	return Params{}
}

func isSet(v *int) bool {
	return v != nil && *v != 0
}

// AddSelectedRows merges a newly selected row spec into old parameters.
//
// With fromInput, addRows numbers rows of the step's input table and the
// selections are unioned. Otherwise addRows numbers rows of the step's
// output table, so it is applied on top of the existing deletion. Masks
// are bounded by limit (rowrange.DefaultMaxMaskLength when <= 0); rows
// past it are dropped from the selection.
//
// The returned rows string is canonical, e.g. "1-3, 5-6".
func AddSelectedRows(old Stored, addRows string, fromInput bool, limit int) (Params, error) {
	current := Migrate(old)

	oldIntervals, err := rowrange.ParseIntervals(current.Rows)
	if err != nil {
		return Params{}, fmt.Errorf("stored rows: %w", err)
	}
	addIntervals, err := rowrange.ParseIntervals(addRows)
	if err != nil {
		return Params{}, err
	}

	oldMask := rowrange.NewMask(oldIntervals, rowrange.Extent(oldIntervals, limit))
	addMask := rowrange.NewMask(addIntervals, rowrange.Extent(addIntervals, limit))

	var merged rowrange.Mask
	if fromInput {
		merged = oldMask.Or(addMask)
	} else {
		merged = rowrange.Compose(oldMask, addMask)
	}
	return Params{Rows: merged.String()}, nil
}
