// Package textops provides the primitive string transforms consumed by the
// fingerprinting pipeline.
//
// The Primitives interface names the six operations the pipeline depends on:
// whitespace stripping, lowercasing, Unicode normalization, quotation-mark
// normalization, punctuation stripping, and accent stripping. Default returns
// the library-backed implementation built on golang.org/x/text and
// go-unidecode. Callers hold a Primitives value and invoke it; nothing in this
// package is inherited or embedded by the pipeline.
//
// Optional cleanup extras (digit removal, stopword removal, stemming) depend on
// language resources that must be prepared with LoadResources before use.
package textops
