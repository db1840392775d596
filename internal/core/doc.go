// Package core provides the drop-rows operations shared by every host.
//
// The row-range parser (package rowrange) and the row filter (package
// table) are pure. This package wraps them with the things a server needs:
// bounded concurrency, persisted steps, logging, and user-facing error
// codes. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Rendering
//
// [Service.Render] validates a table, parses a rows spec against the
// table's row count, and returns the table without the selected rows:
//
//	out, err := svc.Render(ctx, t, params.Params{Rows: "1, 3-5"})
//
// Parse failures are returned as *rowrange.ParseError; use [MapError] to
// obtain a code and message key.
//
// # Steps
//
// A step is a saved set of drop-rows parameters. Steps written by older
// versions carry first_row/last_row instead of rows; [Service.GetStep]
// migrates them and writes the current shape back the first time they are
// read.
package core
