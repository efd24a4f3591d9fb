// Package sorting orders and groups gallery directory snapshots.
//
// It selects comparators for media items and sub-directories from a
// [mediatypes.SortingMethod], implements the seeded random ordering, derives
// group keys and resolves a directory's default sorting method from its
// marker files and the configured defaults.
//
// All functions are total: nil slices and unknown methods leave the input
// unchanged, and an unknown grouping method yields a single group with an
// empty key.
package sorting
