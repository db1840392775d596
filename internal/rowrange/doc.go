// Package rowrange parses user-entered row range specs such as "1-2, 5"
// into intervals and deletion masks.
//
// Row numbers in a spec are 1-based and inclusive, the way a user reads
// them off a table. Everything this package returns is 0-based:
//
//	"5"   -> Interval{Start: 4, End: 4}
//	"1-3" -> Interval{Start: 0, End: 2}
//
// A Mask has one entry per row; true means "drop this row". Parse builds a
// mask for a table of known size. Rows referenced past the end of the table
// are accepted and simply select nothing.
//
// # Errors
//
// Parsing is all-or-nothing. The first bad token aborts with a *ParseError
// carrying a Kind and the offending token. Callers render the error in the
// user's language; this package never produces display text.
//
// # Combining selections
//
// Masks can be combined two ways when a user adds to an existing selection:
//
//   - Or: the new rows are numbered against the same input table.
//   - Compose: the new rows are numbered against the output of the first
//     deletion, so they are shifted past rows that are already gone.
//
// String turns a mask back into canonical spec text.
package rowrange
