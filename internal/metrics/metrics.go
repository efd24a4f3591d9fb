package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sorting engine metrics
var (
	RecomputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_sorter_recomputations_total",
			Help: "Total number of grouped view recomputations",
		},
		[]string{"trigger"}, // "content", "sorting", "grouping"
	)

	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_recompute_duration_seconds",
			Help:    "Time spent sorting and grouping one directory snapshot",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	MediaItemsSorted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_media_items",
			Help:    "Number of media items per recomputed snapshot",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	MediaGroupsProduced = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_media_groups",
			Help:    "Number of media groups per recomputed snapshot",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// Override cache metrics
var (
	OverrideOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_sorter_override_operations_total",
			Help: "Total number of sorting override cache operations",
		},
		[]string{"operation", "status"},
	)

	OverrideStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_override_store_duration_seconds",
			Help:    "Override store operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		},
		[]string{"backend", "operation"},
	)

	OverridesStored = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gallery_sorter_overrides_stored",
			Help: "Number of sorting overrides currently persisted",
		},
		[]string{"backend"},
	)
)

// Scanner metrics
var (
	ScannerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_sorter_scanner_operations_total",
			Help: "Total number of scanner operations",
		},
		[]string{"operation", "status"},
	)

	ScannerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_scanner_operation_duration_seconds",
			Help:    "Scanner operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	ScannerItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_sorter_scanner_items_returned",
			Help:    "Number of entries returned by scanner operations",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"operation"},
	)

	ScannerWatcherEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_sorter_scanner_watcher_events_total",
			Help: "Total number of filesystem events that triggered a rescan",
		},
	)

	ScannerWatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_sorter_scanner_watcher_errors_total",
			Help: "Total number of file watcher errors",
		},
	)
)

// Application info
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gallery_sorter_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// RecordStoreOperation observes the duration of an override store operation
// started at start.
func RecordStoreOperation(backend, operation string, start time.Time) {
	OverrideStoreDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}
