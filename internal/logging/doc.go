// Package logging builds the slog loggers used by the textwrangler CLI and
// library packages.
//
// A run writes human-readable lines to the console and, when a log directory
// is configured, a JSON copy of the same records to a per-run file. Context
// helpers tag records with the run identifier and the input source being
// processed. Library code that is handed no logger falls back to NewNop.
package logging
