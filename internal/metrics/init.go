package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, trigger := range []string{"content", "sorting", "grouping"} {
		RecomputationsTotal.WithLabelValues(trigger)
	}

	for _, op := range []string{"get", "set", "remove"} {
		for _, status := range []string{"hit", "miss", "ok", "error"} {
			OverrideOperationsTotal.WithLabelValues(op, status)
		}
	}

	for _, backend := range []string{"sqlite", "badger", "memory"} {
		for _, op := range []string{"get", "set", "remove", "list", "clear"} {
			OverrideStoreDuration.WithLabelValues(backend, op)
		}
	}

	for _, op := range []string{"get_directory", "search"} {
		ScannerOperationDuration.WithLabelValues(op)
		ScannerItemsReturned.WithLabelValues(op)
		for _, status := range []string{"success", "error"} {
			ScannerOperationsTotal.WithLabelValues(op, status)
		}
	}
}
