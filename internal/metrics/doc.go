// Package metrics provides Prometheus instrumentation for the gallery sorter.
//
// All metrics are prefixed with "gallery_sorter_" and registered with the
// default registry through promauto.
//
// # Metric Categories
//
// ## Sorting Engine
//
//   - RecomputationsTotal: Counter of grouped view recomputations by trigger
//   - RecomputeDuration: Histogram of time spent sorting and grouping
//   - MediaItemsSorted: Histogram of media items per snapshot
//   - MediaGroupsProduced: Histogram of groups per snapshot
//
// ## Override Cache
//
//   - OverrideOperationsTotal: Counter by operation (get/set/remove) and status
//   - OverrideStoreDuration: Histogram by backend and operation
//   - OverridesStored: Gauge of persisted overrides by backend
//
// ## Scanner
//
//   - ScannerOperationsTotal, ScannerOperationDuration, ScannerItemsReturned
//   - ScannerWatcherEvents, ScannerWatcherErrors
//
// # Observers
//
// The gallery and media packages do not import this package. They report
// through observer interfaces implemented here:
//
//	svc := gallery.NewService(sorter, resolver, cache,
//	    gallery.WithObserver(metrics.NewGalleryObserver()))
//	media.SetObserver(metrics.NewScannerObserver())
//
// # Collector
//
// Collector periodically reads the override count from a [StatsProvider]
// and updates OverridesStored:
//
//	collector := metrics.NewCollector(store, time.Minute)
//	collector.Start()
//	defer collector.Stop()
package metrics
