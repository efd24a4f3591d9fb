package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-sorter/internal/gallery"
	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/metrics"
	"gallery-sorter/internal/observable"
	"gallery-sorter/internal/overrides"
	"gallery-sorter/internal/sorting"
	"gallery-sorter/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// collectInterval is how often the stored override count is exported.
const collectInterval = 30 * time.Second

// options holds the command line flags.
type options struct {
	configPath string
	dir        string
	search     string
	sort       string
	group      string
	format     string
	watch      bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("gallery-sorter", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default: $CONFIG_PATH or ./gallery-sorter.yaml)")
	fs.StringVar(&opts.dir, "dir", "", "directory to show, relative to media_dir")
	fs.StringVar(&opts.search, "search", "", "show media whose names contain this text instead of a directory")
	fs.StringVar(&opts.sort, "sort", "", "sorting method to apply and remember for the directory")
	fs.StringVar(&opts.group, "group", "", "grouping method (default: sorting.default_grouping_method)")
	fs.StringVar(&opts.format, "format", "", "output format: text or json (default: text on a terminal, json otherwise)")
	fs.BoolVar(&opts.watch, "watch", false, "print the view again whenever the directory changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.dir == "" && fs.NArg() > 0 {
		opts.dir = fs.Arg(0)
	}
	if opts.search != "" && opts.watch {
		return nil, errors.New("-watch needs a directory, not -search")
	}
	switch opts.format {
	case "", formatText, formatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
	return opts, nil
}

// parseMethods converts the -sort and -group flags. Zero values mean unset.
func (o *options) parseMethods() (sortBy, groupBy mediatypes.SortingMethod, err error) {
	if o.sort != "" {
		if sortBy, err = mediatypes.ParseSortingMethod(o.sort); err != nil {
			return 0, 0, fmt.Errorf("-sort: %w", err)
		}
	}
	if o.group != "" {
		if groupBy, err = mediatypes.ParseSortingMethod(o.group); err != nil {
			return 0, 0, fmt.Errorf("-group: %w", err)
		}
	}
	return sortBy, groupBy, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	config, err := startup.LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	startup.InitLogging(config.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, config, opts)
	stop()
	if err != nil {
		startup.LogFatal("%v", err)
	}
}

func run(ctx context.Context, config *startup.Config, opts *options) error {
	sortBy, groupBy, err := opts.parseMethods()
	if err != nil {
		return err
	}
	if opts.watch {
		startup.PrintBanner(os.Stderr)
	}
	startup.LogConfiguration(config)

	media.SetObserver(metrics.NewScannerObserver())

	// Initialize override store
	storeStart := time.Now()
	store, err := startup.OpenOverrideStore(ctx, config.Overrides)
	if err != nil {
		return fmt.Errorf("failed to open override store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warn("failed to close override store: %v", err)
		}
	}()
	startup.LogStoreInit(store.Backend(), time.Since(storeStart))

	svc, err := newService(config, store, groupBy)
	if err != nil {
		return fmt.Errorf("failed to build sorter: %w", err)
	}

	mediaDir, err := config.AbsMediaDir()
	if err != nil {
		return err
	}
	scanner, closeScanner := newScanner(mediaDir, config.Scanner.Exiftool)
	defer closeScanner()

	if config.Metrics.Enabled {
		srv := startMetricsServer(config.Metrics.Addr, store)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("Metrics server shutdown error: %v", err)
			} else {
				startup.LogShutdownStepComplete("Metrics server stopped")
			}
		}()
	}

	snapshot, err := load(scanner, opts)
	if err != nil {
		return err
	}

	out, err := newPrinter(os.Stdout, opts.format)
	if err != nil {
		return err
	}
	content := observable.NewValue[*media.DirectoryContent](nil)
	sink := newViewSink()
	cancelView := svc.ApplySorting(content).Subscribe(sink.Put)
	defer cancelView()

	// The snapshot is adopted first so -sort is stored against it.
	content.Set(snapshot)
	if sortBy != 0 {
		svc.SetSorting(sortBy)
	}

	if !opts.watch {
		return out.Print(sink.Latest(), svc.CurrentSorting(), svc.CurrentGrouping())
	}

	cancelLog := observable.Map[*media.DirectoryContent, string](content, describeContent).Subscribe(func(s string) {
		logging.Info("Snapshot %s", s)
	})
	defer cancelLog()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		if err := scanner.Watch(watchCtx, opts.dir, content.Set); err != nil {
			logging.Error("Watch of %s stopped: %v", opts.dir, err)
			cancelWatch()
		}
	}()
	watchLoop(watchCtx, sink, out, svc)

	startup.LogShutdownInitiated("interrupt")
	startup.LogShutdownStepComplete("Watcher stopped")
	return nil
}

func newService(config *startup.Config, store overrides.Store, groupBy mediatypes.SortingMethod) (*gallery.Service, error) {
	sorter, err := config.NewSorter()
	if err != nil {
		return nil, err
	}
	defaults, err := config.SortingDefaults()
	if err != nil {
		return nil, err
	}
	if groupBy == 0 {
		if groupBy, err = config.GroupingMethod(); err != nil {
			return nil, err
		}
	}

	return gallery.NewService(
		sorter,
		sorting.NewResolver(defaults),
		overrides.NewCache(store, 0),
		gallery.WithObserver(metrics.NewGalleryObserver()),
		gallery.WithGrouping(groupBy),
	), nil
}

// newScanner returns a scanner and a function releasing its metadata reader.
// A missing exiftool binary only disables metadata.
func newScanner(mediaDir string, exif bool) (*media.Scanner, func()) {
	if !exif {
		return media.NewScanner(mediaDir, nil), func() {}
	}
	reader, err := media.NewExifReader()
	if err != nil {
		logging.Warn("exiftool unavailable, ratings and face counts disabled: %v", err)
		return media.NewScanner(mediaDir, nil), func() {}
	}
	return media.NewScanner(mediaDir, reader), func() {
		if err := reader.Close(); err != nil {
			logging.Warn("failed to stop exiftool: %v", err)
		}
	}
}

func load(scanner *media.Scanner, opts *options) (*media.DirectoryContent, error) {
	if opts.search != "" {
		content, err := scanner.Search(opts.search)
		if err != nil {
			return nil, fmt.Errorf("search %q failed: %w", opts.search, err)
		}
		return content, nil
	}
	content, err := scanner.GetDirectory(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", opts.dir, err)
	}
	return content, nil
}

func startMetricsServer(addr string, store overrides.Store) *http.Server {
	metrics.InitializeMetrics()
	info := startup.GetBuildInfo()
	metrics.SetAppInfo(info.Version, info.Commit, info.GoVersion)

	collector := metrics.NewCollector(store, collectInterval)
	collector.Start()

	router := setupRouter()
	startup.LogMetricsServer(router, addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(collector.Stop)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics server error: %v", err)
		}
	}()
	return srv
}

func setupRouter() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods("GET").Name("metrics")
	r.HandleFunc("/healthz", healthCheck).Methods("GET").Name("health")
	r.HandleFunc("/version", version).Methods("GET").Name("version")
	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func version(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := writeJSON(w, startup.GetBuildInfo()); err != nil {
		logging.Warn("failed to write version: %v", err)
	}
}

// watchLoop prints every new view until ctx is cancelled.
func watchLoop(ctx context.Context, sink *viewSink, out *printer, svc *gallery.Service) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sink.Updated():
			if err := out.Print(sink.Latest(), svc.CurrentSorting(), svc.CurrentGrouping()); err != nil {
				logging.Error("Failed to print view: %v", err)
			}
		}
	}
}
