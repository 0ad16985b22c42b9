// Package fingerprint turns cleaned text into canonical keys for near-duplicate
// grouping.
//
// Two modes are supported:
//   - Standard: whitespace tokens, deduplicated, sorted, joined with a space
//   - NGram(n): rune shingles of length n, deduplicated, sorted, concatenated
//
// Both modes strip accents from the joined key. Keys are a pure function of
// the cleaned input, so equal cleaned strings always share a key while
// distinct originals may collapse onto one.
package fingerprint
