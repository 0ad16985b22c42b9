// Package config loads, normalizes, and validates textwrangler configuration.
//
// It supplies defaults, reads TOML files, expands tilde paths, and applies
// TEXTWRANGLER_* environment overrides (optionally seeded from a .env file).
// Fingerprint method, normalization form and cleanup language are checked
// against the same parsers the library uses, so a config that validates here
// builds a transformer without further errors.
package config
