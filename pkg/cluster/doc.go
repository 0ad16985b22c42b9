// Package cluster groups strings that share a fingerprint key and replaces
// every member of a group with the group's most frequent original.
//
// The Engine is parameterized by a Keyer, so the same reduction serves the
// standard and n-gram fingerprints. Keys may be computed by several workers;
// grouping and canonical selection always run as a single ordered pass, so
// results never depend on the worker count.
package cluster
