// Package wrangler is the entry point for cleaning, fingerprinting and
// deduplicating collections of strings.
//
// A Transformer is built once from Options and then called with data only.
// Every input is cleaned by a fixed sequence (trim, lowercase, Unicode
// normalization, quotation-mark normalization, punctuation to spaces, then
// any enabled extras) before a fingerprint key is computed. Transform returns
// either the keys or, by default, each original replaced by the most frequent
// original sharing its key:
//
//	t, err := wrangler.New(wrangler.Options{})
//	out, err := t.Transform([]string{"New York", "new york", "New York"})
//	// out == []string{"New York", "New York", "New York"}
package wrangler
