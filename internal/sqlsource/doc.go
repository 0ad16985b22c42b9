// Package sqlsource reads a text column from a SQLite table and writes
// canonicalized values back.
//
// Rows are addressed by an integer key column (rowid unless configured).
// Identifiers are validated before being interpolated into statements; values
// always travel as bind parameters. Nothing about fingerprints is persisted.
package sqlsource
