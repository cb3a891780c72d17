// Package sample is a small fixture of free functions and one named wrapper
// type. Code intelligence tooling uses it as known input: its symbols,
// signatures and doc comments are what an indexer is expected to find.
package sample
