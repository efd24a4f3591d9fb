package startup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"gallery-sorter/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// InitLogging configures the logging package from cfg.
func InitLogging(cfg LogConfig) {
	logging.Init(logging.Config{Level: cfg.Level, Format: cfg.Format, Output: os.Stderr})
}

// PrintBanner writes the startup banner to w.
func PrintBanner(w io.Writer) {
	banner := `
------------------------------------------------------------
   ___      _ _                    ___          _
  / __|__ _| | |___ _ _ _  _      / __| ___ _ _| |_ ___ _ _
 | (_ / _' | | / -_) '_| || |     \__ \/ _ \ '_|  _/ -_) '_|
  \___\__,_|_|_\___|_|  \_, |     |___/\___/_|  \__\___|_|
                        |__/
------------------------------------------------------------`
	fmt.Fprintln(w, banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

// LogConfiguration logs the effective configuration.
func LogConfiguration(cfg *Config) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if cfg.ConfigFile != "" {
		logging.Info("  Config file:               %s", cfg.ConfigFile)
	} else {
		logging.Info("  Config file:               (none, defaults and environment)")
	}
	logging.Info("  media_dir:                 %s", cfg.MediaDir)
	logging.Info("  default_photo_method:      %s", cfg.Sorting.DefaultPhotoMethod)
	logging.Info("  default_search_method:     %s", cfg.Sorting.DefaultSearchMethod)
	logging.Info("  default_grouping_method:   %s", cfg.Sorting.DefaultGroupingMethod)
	logging.Info("  directory_sorting_by_date: %v", cfg.Sorting.DirectorySortingByDate)
	logging.Info("  marker_files:              %d mappings", len(cfg.Sorting.MarkerFiles))
	logging.Info("  collation:                 %s", cfg.Locale.Collation)
	logging.Info("  timezone:                  %s", cfg.Locale.Timezone)
	logging.Info("  overrides:                 %s (%s)", cfg.Overrides.Backend, cfg.Overrides.Path)
	logging.Info("  exiftool:                  %s", enabledString(cfg.Scanner.Exiftool))
	logging.Info("  metrics:                   %s", enabledString(cfg.Metrics.Enabled))
	logging.Info("  log level:                 %s", logging.GetLevel())
	logging.Info("")
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogStoreInit logs override store initialization
func LogStoreInit(backend string, duration time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("OVERRIDE STORE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] %s store ready in %v", backend, duration)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	sort.Slice(routes, func(i, j int) bool { return routes[i].Path < routes[j].Path })
	return routes, err
}

// LogMetricsServer logs the metrics endpoint and its routes.
func LogMetricsServer(router *mux.Router, addr string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("METRICS SERVER")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Listening on %s", addr)

	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}
	for _, route := range routes {
		logging.Debug("    %-6s %s", route.Method, route.Path)
	}
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}
