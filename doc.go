// Command gallery-sorter prints the sorted and grouped view of a media
// directory the way a gallery would show it.
//
// # Application Lifecycle
//
//  1. Configuration Loading: built-in defaults, an optional YAML file and
//     GALLERY_* environment variables (see package startup)
//  2. Override Store: opens the sqlite, badger or in-memory store that
//     remembers per-directory sorting choices
//  3. Sorting Service: builds the collator, date formatter and default-sort
//     resolver and starts a gallery.Service
//  4. Scan: reads the directory (or runs a search) and hands the snapshot to
//     the service, which adopts its stored override or default sorting
//  5. Output: prints the grouped view as text on a terminal and as JSON
//     otherwise
//
// With -watch the directory is rescanned on every change and the view is
// printed again until SIGINT or SIGTERM.
//
// # Usage
//
//	gallery-sorter [flags] [dir]
//
//	-config path   YAML config file
//	-dir path      directory relative to media_dir
//	-search text   show matching media from the whole tree
//	-sort method   apply and remember a sorting method for the directory
//	-group method  grouping method for this run
//	-format fmt    text or json
//	-watch         keep printing as the directory changes
//
// Methods are name-asc, name-desc, date-asc, date-desc, rating-asc,
// rating-desc, associate-count-asc, associate-count-desc and random.
// Choosing a directory's default method again removes its override.
//
// # Metrics
//
// When metrics.enabled is set, a small HTTP server exposes:
//
//	GET /metrics   Prometheus metrics
//	GET /healthz   liveness
//	GET /version   build information
package main
