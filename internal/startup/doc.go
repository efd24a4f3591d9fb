// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] layers three sources with koanf, later ones winning:
//
//  1. built-in defaults ([DefaultConfig])
//  2. an optional YAML file (CONFIG_PATH, gallery-sorter.yaml or config.yaml)
//  3. environment variables prefixed with GALLERY_
//
// Environment names map onto config keys by section, for example
// GALLERY_SORTING_DEFAULT_PHOTO_METHOD sets sorting.default_photo_method and
// GALLERY_MEDIA_DIR sets media_dir. LOG_LEVEL is honored as well.
//
// A complete file looks like:
//
//	media_dir: /photos
//	sorting:
//	  default_photo_method: date-asc
//	  default_search_method: date-desc
//	  default_grouping_method: date-asc
//	  directory_sorting_by_date: false
//	  marker_files:
//	    - {file: .order_descending_date.pg2conf, method: date-desc}
//	    - {file: .order_random.pg2conf, method: random}
//	locale:
//	  collation: und
//	  date_layout: January 2, 2006
//	  timezone: Local
//	overrides:
//	  backend: sqlite
//	  path: ./.gallery-sorter
//	scanner:
//	  exiftool: false
//	metrics:
//	  enabled: false
//	  addr: :9090
//	log:
//	  level: info
//	  format: console
//
// [OpenOverrideStore] opens the configured override backend.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
package startup
