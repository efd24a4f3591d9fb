package metrics

import (
	"gallery-sorter/internal/gallery"
	"gallery-sorter/internal/media"
)

// galleryObserver implements gallery.Observer using the Prometheus
// metrics declared in this package.
type galleryObserver struct{}

// NewGalleryObserver creates an observer that records recomputation and
// override cache activity into the collectors declared in metrics.go.
func NewGalleryObserver() gallery.Observer {
	return &galleryObserver{}
}

func (o *galleryObserver) ObserveRecompute(trigger string, durationSeconds float64, mediaCount, groupCount int) {
	RecomputationsTotal.WithLabelValues(trigger).Inc()
	RecomputeDuration.Observe(durationSeconds)
	MediaItemsSorted.Observe(float64(mediaCount))
	MediaGroupsProduced.Observe(float64(groupCount))
}

func (o *galleryObserver) ObserveOverride(operation, status string) {
	OverrideOperationsTotal.WithLabelValues(operation, status).Inc()
}

// scannerObserver implements media.Observer.
type scannerObserver struct{}

// NewScannerObserver creates an observer for media.SetObserver.
func NewScannerObserver() media.Observer {
	return &scannerObserver{}
}

func (o *scannerObserver) ObserveScan(operation string, durationSeconds float64, items int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ScannerOperationsTotal.WithLabelValues(operation, status).Inc()
	ScannerOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
	if err == nil {
		ScannerItemsReturned.WithLabelValues(operation).Observe(float64(items))
	}
}

func (o *scannerObserver) ObserveWatchEvent() {
	ScannerWatcherEvents.Inc()
}

func (o *scannerObserver) ObserveWatchError() {
	ScannerWatcherErrors.Inc()
}
