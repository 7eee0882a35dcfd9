// Package core implements the delimited-table importer: loading a
// delimited text file into an in-memory table and answering read-only
// queries against it.
//
// # Overview
//
// An [Importer] owns exactly one table. It starts empty and is
// populated by [Importer.Load], which parses a file into an ordered
// header list and a slice of [Row] values keyed by header name. A
// successful load replaces the table atomically; a failed load leaves
// the previous table untouched. All other operations are read-only:
//
//   - [Importer.Sample] returns the first N rows
//   - [Importer.Filter] returns rows matching a column value
//   - [Importer.Summarize] produces per-column statistics
//
// # Delimiter detection
//
// When the caller leaves the default comma delimiter, Load sniffs the
// actual delimiter from the first 1024 decoded bytes of the file,
// choosing among comma, tab, semicolon and pipe by frequency and
// cross-line consistency. An inconclusive sample falls back to comma.
//
// # Error handling
//
// Every failure is reported as an [*Error] carrying a [Kind] from a
// fixed taxonomy (file not found, permission denied, decode, parse,
// unknown column, no data, write, unexpected). Nothing in this
// package panics or terminates the process. Technical errors are
// mapped to user-facing messages via [MapError].
//
// This package has no UI or transport dependencies and can be used by
// any frontend.
package core
