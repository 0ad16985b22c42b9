// Package language resolves user-supplied language names and codes into the
// identifiers expected by the text cleanup extras.
//
// Configuration accepts ISO 639-1 codes ("en"), ISO 639-2 codes ("eng",
// "fre"), or English names ("french"). Stopword lists are keyed by ISO 639-1
// codes while the Snowball stemmers are keyed by lowercase English names, so
// both lookups live here instead of being duplicated in each caller.
package language
