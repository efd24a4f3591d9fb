package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEngineMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"RecomputationsTotal", RecomputationsTotal},
		{"RecomputeDuration", RecomputeDuration},
		{"MediaItemsSorted", MediaItemsSorted},
		{"MediaGroupsProduced", MediaGroupsProduced},
		{"OverrideOperationsTotal", OverrideOperationsTotal},
		{"OverrideStoreDuration", OverrideStoreDuration},
		{"OverridesStored", OverridesStored},
		{"ScannerOperationsTotal", ScannerOperationsTotal},
		{"ScannerOperationDuration", ScannerOperationDuration},
		{"ScannerItemsReturned", ScannerItemsReturned},
		{"ScannerWatcherEvents", ScannerWatcherEvents},
		{"ScannerWatcherErrors", ScannerWatcherErrors},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestInitializeMetrics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("InitializeMetrics panicked: %v", r)
		}
	}()
	InitializeMetrics()
}

func TestGalleryObserverRecordsRecompute(t *testing.T) {
	obs := NewGalleryObserver()

	before := testutil.ToFloat64(RecomputationsTotal.WithLabelValues("grouping"))
	obs.ObserveRecompute("grouping", 0.002, 10, 3)
	after := testutil.ToFloat64(RecomputationsTotal.WithLabelValues("grouping"))

	if after-before != 1 {
		t.Errorf("RecomputationsTotal{grouping} increased by %v, want 1", after-before)
	}
}

func TestGalleryObserverRecordsOverride(t *testing.T) {
	obs := NewGalleryObserver()

	before := testutil.ToFloat64(OverrideOperationsTotal.WithLabelValues("set", "ok"))
	obs.ObserveOverride("set", "ok")
	obs.ObserveOverride("set", "ok")
	after := testutil.ToFloat64(OverrideOperationsTotal.WithLabelValues("set", "ok"))

	if after-before != 2 {
		t.Errorf("OverrideOperationsTotal{set,ok} increased by %v, want 2", after-before)
	}
}

type fakeStats struct {
	backend string
	count   int
	err     error
}

func (f *fakeStats) Backend() string { return f.backend }

func (f *fakeStats) Count(ctx context.Context) (int, error) { return f.count, f.err }

func TestCollectorSetsOverrideGauge(t *testing.T) {
	c := NewCollector(&fakeStats{backend: "collector-test", count: 7}, time.Hour)
	c.collect()

	got := testutil.ToFloat64(OverridesStored.WithLabelValues("collector-test"))
	if got != 7 {
		t.Errorf("OverridesStored{collector-test} = %v, want 7", got)
	}
}

func TestCollectorIgnoresErrors(t *testing.T) {
	OverridesStored.WithLabelValues("collector-error").Set(3)

	c := NewCollector(&fakeStats{backend: "collector-error", err: errors.New("locked")}, time.Hour)
	c.collect()

	got := testutil.ToFloat64(OverridesStored.WithLabelValues("collector-error"))
	if got != 3 {
		t.Errorf("OverridesStored{collector-error} = %v, want unchanged 3", got)
	}
}

func TestCollectorNilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	c.collect()
}

func TestCollectorStartStop(t *testing.T) {
	c := NewCollector(&fakeStats{backend: "collector-loop", count: 1}, 10*time.Millisecond)
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()
}

func TestScannerObserver(t *testing.T) {
	obs := NewScannerObserver()

	okBefore := testutil.ToFloat64(ScannerOperationsTotal.WithLabelValues("search", "success"))
	errBefore := testutil.ToFloat64(ScannerOperationsTotal.WithLabelValues("search", "error"))
	eventsBefore := testutil.ToFloat64(ScannerWatcherEvents)

	obs.ObserveScan("search", 0.01, 12, nil)
	obs.ObserveScan("search", 0.01, 0, errors.New("denied"))
	obs.ObserveWatchEvent()

	if got := testutil.ToFloat64(ScannerOperationsTotal.WithLabelValues("search", "success")) - okBefore; got != 1 {
		t.Errorf("success count increased by %v, want 1", got)
	}
	if got := testutil.ToFloat64(ScannerOperationsTotal.WithLabelValues("search", "error")) - errBefore; got != 1 {
		t.Errorf("error count increased by %v, want 1", got)
	}
	if got := testutil.ToFloat64(ScannerWatcherEvents) - eventsBefore; got != 1 {
		t.Errorf("watcher events increased by %v, want 1", got)
	}
}
