// Command overrides manages the per-directory sorting overrides that
// gallery-sorter remembers.
//
// It opens the store configured in the gallery-sorter config file
// (overrides.backend and overrides.path) and supports the following
// operations:
//   - list: show every stored override
//   - get, set, remove: inspect or change the override of one directory
//   - clear: remove all overrides
//   - status: show the backend and the number of stored overrides
//
// Usage:
//
//	overrides <command> [flags] [args]
//
// Commands:
//
//	list [-json]        List overrides ordered by key, with the time each
//	                    was last changed.
//
//	get <dir>           Show the override for a directory. A directory
//	                    without one uses its default sorting.
//
//	set <dir> <method>  Store an override. Methods use the same names as
//	                    the gallery-sorter -sort flag.
//
//	remove <dir>        Remove the override for a directory.
//
//	clear [-yes]        Remove all overrides. Asks for confirmation on a
//	                    terminal and requires -yes otherwise.
//
//	status              Show the store backend and override count.
//
// A <dir> is a path relative to media_dir. Full keys such as
// "search:beach" are accepted as well.
//
// Environment:
//
//	CONFIG_PATH - Path to the gallery-sorter config file
//	GALLERY_OVERRIDES_BACKEND, GALLERY_OVERRIDES_PATH - Store selection
package main
