package overrides

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/metrics"
)

// failingStore fails every operation.
type failingStore struct {
	*MemoryStore
	err error
}

func (s *failingStore) GetSorting(context.Context, string) (mediatypes.SortingMethod, error) {
	return 0, s.err
}

func (s *failingStore) SetSorting(context.Context, string, mediatypes.SortingMethod) error {
	return s.err
}

func (s *failingStore) RemoveSorting(context.Context, string) error {
	return s.err
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	cache := NewCache(store, 0)

	if _, ok := cache.GetSorting("dir:a"); ok {
		t.Fatal("GetSorting on empty store reported an override")
	}

	if !cache.SetSorting("dir:a", mediatypes.SortByRatingDesc) {
		t.Fatal("SetSorting reported failure on a memory store")
	}
	if m, ok := cache.GetSorting("dir:a"); !ok || m != mediatypes.SortByRatingDesc {
		t.Errorf("GetSorting = (%v, %v), want (rating-desc, true)", m, ok)
	}

	if !cache.RemoveSorting("dir:a") {
		t.Fatal("RemoveSorting reported failure on a memory store")
	}
	if _, ok := cache.GetSorting("dir:a"); ok {
		t.Error("override still present after RemoveSorting")
	}
}

func TestCacheIgnoresInvalidStoredMethod(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_ = store.SetSorting(context.Background(), "dir:odd", mediatypes.SortingMethod(99))

	if _, ok := NewCache(store, 0).GetSorting("dir:odd"); ok {
		t.Error("invalid stored method should read as no override")
	}
}

// Not parallel: reads a shared counter.
func TestCacheSwallowsStoreErrors(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), err: errors.New("disk on fire")}
	cache := NewCache(store, 0)

	before := testutil.ToFloat64(metrics.OverrideOperationsTotal.WithLabelValues("get", "error"))
	setBefore := testutil.ToFloat64(metrics.OverrideOperationsTotal.WithLabelValues("set", "error"))

	if _, ok := cache.GetSorting("dir:a"); ok {
		t.Error("failed lookup should report no override")
	}
	if cache.SetSorting("dir:a", mediatypes.SortByNameAsc) {
		t.Error("failed SetSorting reported success")
	}
	if cache.RemoveSorting("dir:a") {
		t.Error("failed RemoveSorting reported success")
	}

	after := testutil.ToFloat64(metrics.OverrideOperationsTotal.WithLabelValues("get", "error"))
	if after-before != 1 {
		t.Errorf("get errors increased by %v, want 1", after-before)
	}
	// Write failures are counted by the caller from the returned status.
	if got := testutil.ToFloat64(metrics.OverrideOperationsTotal.WithLabelValues("set", "error")) - setBefore; got != 0 {
		t.Errorf("set errors increased by %v in the cache, want 0", got)
	}
}
