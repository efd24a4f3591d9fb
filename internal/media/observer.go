package media

// Observer records scanner metrics. The metrics package provides the
// implementation so that media does not import it.
type Observer interface {
	// ObserveScan records one GetDirectory or Search call. items is the
	// number of directories and media items returned.
	ObserveScan(operation string, durationSeconds float64, items int, err error)
	// ObserveWatchEvent records a filesystem event that schedules a rescan.
	ObserveWatchEvent()
	// ObserveWatchError records a watcher failure.
	ObserveWatchError()
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is skipped.
var defaultObserver Observer

// SetObserver sets the package-level scanner observer.
// Call this once at startup.
func SetObserver(o Observer) {
	defaultObserver = o
}

func observe() Observer {
	return defaultObserver
}
