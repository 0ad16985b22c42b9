// Package main hosts the textwrangler CLI.
//
// The Cobra command tree reads lines from files, stdin or a SQLite column,
// runs them through a wrangler.Transformer built from the resolved
// configuration, and prints keys, deduplicated values or a group report.
// Configuration, logging, metrics and the run id are resolved once per
// invocation by commandContext.
package main
