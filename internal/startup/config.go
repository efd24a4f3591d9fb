package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"gallery-sorter/internal/locale"
	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/overrides"
	"gallery-sorter/internal/sorting"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "GALLERY_"

// DefaultConfigPaths lists the config files searched, in order, when
// CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"gallery-sorter.yaml",
	"gallery-sorter.yml",
	"config.yaml",
	"config.yml",
}

// Config holds all application configuration
type Config struct {
	MediaDir  string          `koanf:"media_dir"`
	Sorting   SortingConfig   `koanf:"sorting"`
	Locale    LocaleConfig    `koanf:"locale"`
	Overrides OverridesConfig `koanf:"overrides"`
	Scanner   ScannerConfig   `koanf:"scanner"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Log       LogConfig       `koanf:"log"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}

// SortingConfig holds the default sorting behavior.
type SortingConfig struct {
	DefaultPhotoMethod     string             `koanf:"default_photo_method"`
	DefaultSearchMethod    string             `koanf:"default_search_method"`
	DefaultGroupingMethod  string             `koanf:"default_grouping_method"`
	DirectorySortingByDate bool               `koanf:"directory_sorting_by_date"`
	MarkerFiles            []MarkerFileConfig `koanf:"marker_files"`
}

// MarkerFileConfig maps a marker file name to a sorting method.
type MarkerFileConfig struct {
	File   string `koanf:"file"`
	Method string `koanf:"method"`
}

// LocaleConfig controls name collation and date group labels.
type LocaleConfig struct {
	Collation  string `koanf:"collation"`
	DateLayout string `koanf:"date_layout"`
	Timezone   string `koanf:"timezone"`
}

// OverridesConfig selects the override store.
type OverridesConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
}

// ScannerConfig controls filesystem scanning.
type ScannerConfig struct {
	Exiftool bool `koanf:"exiftool"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	markers := sorting.DefaultMarkerMappings()
	markerCfg := make([]MarkerFileConfig, len(markers))
	for i, m := range markers {
		markerCfg[i] = MarkerFileConfig{File: m.File, Method: m.Method.String()}
	}

	return &Config{
		MediaDir: ".",
		Sorting: SortingConfig{
			DefaultPhotoMethod:     mediatypes.SortByDateAsc.String(),
			DefaultSearchMethod:    mediatypes.SortByDateDesc.String(),
			DefaultGroupingMethod:  mediatypes.SortByDateAsc.String(),
			DirectorySortingByDate: false,
			MarkerFiles:            markerCfg,
		},
		Locale: LocaleConfig{
			Collation:  "und",
			DateLayout: locale.DefaultLongDateLayout,
			Timezone:   "Local",
		},
		Overrides: OverridesConfig{
			Backend: overrides.BackendSQLite,
			Path:    "./.gallery-sorter",
		},
		Scanner: ScannerConfig{
			Exiftool: false,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig layers the built-in defaults, an optional YAML file and
// GALLERY_* environment variables, in that order of precedence. An empty
// path searches CONFIG_PATH and DefaultConfigPaths.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	// LOG_LEVEL is shared with the logging package.
	if level := os.Getenv("LOG_LEVEL"); level != "" && os.Getenv(EnvPrefix+"LOG_LEVEL") == "" {
		if err := k.Set("log.level", level); err != nil {
			return nil, fmt.Errorf("failed to set log.level: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.ConfigFile = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		logging.Warn("%s=%s does not exist, ignoring", ConfigPathEnvVar, envPath)
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configSections are the first-level keys that take nested env names.
var configSections = []string{"sorting", "locale", "overrides", "scanner", "metrics", "log"}

// envTransformFunc maps GALLERY_SORTING_DEFAULT_PHOTO_METHOD to
// sorting.default_photo_method and GALLERY_MEDIA_DIR to media_dir.
// Returning "" skips the variable.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			if section == "sorting" && rest == "marker_files" {
				// Lists of mappings only come from the config file.
				return ""
			}
			return section + "." + rest
		}
	}
	return key
}

// Validate checks every value that is parsed later.
func (c *Config) Validate() error {
	if _, err := c.SortingDefaults(); err != nil {
		return err
	}
	if _, err := c.GroupingMethod(); err != nil {
		return err
	}
	if _, err := c.Collator(); err != nil {
		return err
	}
	if _, err := c.DateFormatter(); err != nil {
		return err
	}
	switch c.Overrides.Backend {
	case overrides.BackendSQLite, overrides.BackendBadger, overrides.BackendMemory:
	default:
		return fmt.Errorf("unknown overrides backend %q (want sqlite, badger or memory)", c.Overrides.Backend)
	}
	if c.Overrides.Backend != overrides.BackendMemory && c.Overrides.Path == "" {
		return fmt.Errorf("overrides.path is required for the %s backend", c.Overrides.Backend)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.Log.Format)
	}
	return nil
}

// SortingDefaults converts the sorting section for the resolver.
func (c *Config) SortingDefaults() (sorting.Defaults, error) {
	photo, err := mediatypes.ParseSortingMethod(c.Sorting.DefaultPhotoMethod)
	if err != nil {
		return sorting.Defaults{}, fmt.Errorf("sorting.default_photo_method: %w", err)
	}
	search, err := mediatypes.ParseSortingMethod(c.Sorting.DefaultSearchMethod)
	if err != nil {
		return sorting.Defaults{}, fmt.Errorf("sorting.default_search_method: %w", err)
	}

	markers := make([]sorting.MarkerMapping, 0, len(c.Sorting.MarkerFiles))
	for i, m := range c.Sorting.MarkerFiles {
		if m.File == "" {
			return sorting.Defaults{}, fmt.Errorf("sorting.marker_files[%d]: file is empty", i)
		}
		method, err := mediatypes.ParseSortingMethod(m.Method)
		if err != nil {
			return sorting.Defaults{}, fmt.Errorf("sorting.marker_files[%d] (%s): %w", i, m.File, err)
		}
		markers = append(markers, sorting.MarkerMapping{File: m.File, Method: method})
	}

	return sorting.Defaults{Photo: photo, Search: search, Markers: markers}, nil
}

// GroupingMethod returns the configured initial grouping method.
func (c *Config) GroupingMethod() (mediatypes.SortingMethod, error) {
	m, err := mediatypes.ParseSortingMethod(c.Sorting.DefaultGroupingMethod)
	if err != nil {
		return 0, fmt.Errorf("sorting.default_grouping_method: %w", err)
	}
	return m, nil
}

// Collator builds the name collator.
func (c *Config) Collator() (locale.Collator, error) {
	return locale.NewCollator(c.Locale.Collation)
}

// DateFormatter builds the date group label formatter. "Local" and an empty
// timezone use the local zone.
func (c *Config) DateFormatter() (locale.DateFormatter, error) {
	tz := c.Locale.Timezone
	if strings.EqualFold(tz, "local") {
		tz = ""
	}
	return locale.NewDateFormatter(c.Locale.DateLayout, tz)
}

// NewSorter builds a sorter from the configuration.
func (c *Config) NewSorter() (*sorting.Sorter, error) {
	collator, err := c.Collator()
	if err != nil {
		return nil, err
	}
	dates, err := c.DateFormatter()
	if err != nil {
		return nil, err
	}
	return sorting.NewSorter(sorting.Options{
		Collator:               collator,
		Dates:                  dates,
		DirectorySortingByDate: c.Sorting.DirectorySortingByDate,
	}), nil
}

// AbsMediaDir returns the media directory as an absolute path.
func (c *Config) AbsMediaDir() (string, error) {
	dir, err := filepath.Abs(c.MediaDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve media directory path: %w", err)
	}
	return dir, nil
}
