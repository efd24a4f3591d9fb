package startup

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/overrides"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gallery-sorter.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	defaults, err := cfg.SortingDefaults()
	if err != nil {
		t.Fatalf("SortingDefaults failed: %v", err)
	}
	if defaults.Photo != mediatypes.SortByDateAsc || defaults.Search != mediatypes.SortByDateDesc {
		t.Errorf("defaults = %v/%v, want date-asc/date-desc", defaults.Photo, defaults.Search)
	}
	if len(defaults.Markers) != 7 || defaults.Markers[6].Method != mediatypes.SortRandom {
		t.Errorf("marker mappings = %+v", defaults.Markers)
	}
	if m := defaults.Markers[0]; m.File != ".order_descending_name.pg2conf" || m.Method != mediatypes.SortByNameDesc {
		t.Errorf("first marker mapping = %+v, want descending name", m)
	}
	if g, _ := cfg.GroupingMethod(); g != mediatypes.SortByDateAsc {
		t.Errorf("GroupingMethod() = %v, want date-asc", g)
	}
	if cfg.Overrides.Backend != overrides.BackendSQLite {
		t.Errorf("Overrides.Backend = %q", cfg.Overrides.Backend)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", cfg.ConfigFile)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	path := writeConfig(t, `
media_dir: /photos
sorting:
  default_photo_method: ascName
  default_search_method: rating-desc
  directory_sorting_by_date: true
  marker_files:
    - file: .sort_by_faces
      method: associate-count-desc
locale:
  collation: natural
  timezone: UTC
overrides:
  backend: memory
`)
	t.Setenv("GALLERY_SORTING_DEFAULT_GROUPING_METHOD", "name-asc")
	t.Setenv("GALLERY_LOG_LEVEL", "debug")
	t.Setenv("GALLERY_METRICS_ENABLED", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MediaDir != "/photos" {
		t.Errorf("MediaDir = %q", cfg.MediaDir)
	}
	if !cfg.Sorting.DirectorySortingByDate {
		t.Error("DirectorySortingByDate = false, want true")
	}
	defaults, _ := cfg.SortingDefaults()
	if defaults.Photo != mediatypes.SortByNameAsc {
		t.Errorf("Photo = %v, want name-asc", defaults.Photo)
	}
	if len(defaults.Markers) != 1 || defaults.Markers[0].Method != mediatypes.SortByAssociateCountDesc {
		t.Errorf("file marker list should replace the defaults, got %+v", defaults.Markers)
	}
	if g, _ := cfg.GroupingMethod(); g != mediatypes.SortByNameAsc {
		t.Errorf("GroupingMethod() = %v, want name-asc from env", g)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true from env")
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}

func TestLoadConfigFromConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "media_dir: /from-env-path\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MediaDir != "/from-env-path" {
		t.Errorf("MediaDir = %q", cfg.MediaDir)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad photo method", "sorting:\n  default_photo_method: sideways\n", "default_photo_method"},
		{"bad grouping method", "sorting:\n  default_grouping_method: size\n", "default_grouping_method"},
		{"bad marker method", "sorting:\n  marker_files:\n    - {file: x, method: y}\n", "marker_files[0]"},
		{"empty marker file", "sorting:\n  marker_files:\n    - {file: '', method: random}\n", "file is empty"},
		{"bad timezone", "locale:\n  timezone: Mars/Olympus\n", "timezone"},
		{"bad collation", "locale:\n  collation: '!!'\n", "collation"},
		{"bad backend", "overrides:\n  backend: redis\n", "overrides backend"},
		{"bad log format", "log:\n  format: xml\n", "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"GALLERY_MEDIA_DIR":                         "media_dir",
		"GALLERY_SORTING_DEFAULT_PHOTO_METHOD":      "sorting.default_photo_method",
		"GALLERY_SORTING_DIRECTORY_SORTING_BY_DATE": "sorting.directory_sorting_by_date",
		"GALLERY_OVERRIDES_BACKEND":                 "overrides.backend",
		"GALLERY_LOCALE_DATE_LAYOUT":                "locale.date_layout",
		"GALLERY_SORTING_MARKER_FILES":              "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigNewSorter(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Locale.Timezone = "UTC"
	if _, err := cfg.NewSorter(); err != nil {
		t.Errorf("NewSorter failed: %v", err)
	}

	cfg.Locale.Collation = "!!"
	if _, err := cfg.NewSorter(); err == nil {
		t.Error("NewSorter should fail for an invalid collation")
	}
}

func TestOpenOverrideStore(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{overrides.BackendMemory, overrides.BackendSQLite, overrides.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			store, err := OpenOverrideStore(ctx, OverridesConfig{
				Backend: backend,
				Path:    filepath.Join(t.TempDir(), "state"),
			})
			if err != nil {
				t.Fatalf("OpenOverrideStore(%s) failed: %v", backend, err)
			}
			defer store.Close()

			if store.Backend() != backend {
				t.Errorf("Backend() = %q, want %q", store.Backend(), backend)
			}
			if err := store.SetSorting(ctx, "dir:a", mediatypes.SortByNameDesc); err != nil {
				t.Fatalf("SetSorting failed: %v", err)
			}
			if m, err := store.GetSorting(ctx, "dir:a"); err != nil || m != mediatypes.SortByNameDesc {
				t.Errorf("GetSorting = (%v, %v)", m, err)
			}
		})
	}
}

func TestOpenOverrideStoreRejectsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenOverrideStore(context.Background(), OverridesConfig{Backend: overrides.BackendSQLite, Path: file}); err == nil {
		t.Error("OpenOverrideStore should fail when the path is a file")
	}
}

func TestGetRoutes(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.HandleFunc("/metrics", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET").Name("metrics")
	router.HandleFunc("/healthz", func(_ http.ResponseWriter, _ *http.Request) {})

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	if routes[0].Path != "/healthz" || routes[0].Method != "*" {
		t.Errorf("routes[0] = %+v", routes[0])
	}
	if routes[1].Name != "metrics" || routes[1].Method != "GET" {
		t.Errorf("routes[1] = %+v", routes[1])
	}
}

func TestPrintBanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "----") {
		t.Errorf("banner output missing: %q", buf.String())
	}
}
