// Package database provides the SQLite-backed store for sorting overrides.
//
// Overrides live in the sorting_overrides table keyed by directory key, with
// the sorting method kept in its text form ("name-asc", "random", ...). A
// small metadata table records the schema version.
//
// The database uses WAL mode for concurrent reads and creates its schema on
// open. *Database implements overrides.Store.
package database
