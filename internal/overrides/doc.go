// Package overrides persists per-directory sorting overrides.
//
// An override maps a directory key (see media.DirectoryContent.Key) to the
// sorting method the user picked for it. Only methods that differ from the
// directory's default are stored.
//
// Backends:
//   - memory: a map, lost on exit
//   - badger: an embedded BadgerDB key-value store
//   - sqlite: see package database
//
// [Cache] adapts a [Store] to the infallible lookup the gallery service
// needs: errors are logged and counted, and a failed lookup means no override.
package overrides
