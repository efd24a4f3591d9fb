package overrides

import (
	"context"
	"errors"
	"time"

	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/metrics"
)

// DefaultTimeout bounds a single cache operation.
const DefaultTimeout = 2 * time.Second

// Cache adapts a Store to the context-free, infallible override lookup used
// by the gallery service.
type Cache struct {
	store   Store
	timeout time.Duration
}

// NewCache wraps store. A non-positive timeout uses DefaultTimeout.
func NewCache(store Store, timeout time.Duration) *Cache {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Cache{store: store, timeout: timeout}
}

// GetSorting returns the stored override for key. Store errors and invalid
// stored methods report no override.
func (c *Cache) GetSorting(key string) (mediatypes.SortingMethod, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	method, err := c.store.GetSorting(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, false
	}
	if err != nil {
		c.failed("get", key, err)
		return 0, false
	}
	if !method.IsValid() {
		logging.Warn("Ignoring invalid sorting override %d for %s", int(method), key)
		return 0, false
	}
	return method, true
}

// SetSorting stores method for key and reports whether the store accepted it.
// Callers own the metric for the outcome.
func (c *Cache) SetSorting(key string, method mediatypes.SortingMethod) bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.store.SetSorting(ctx, key, method); err != nil {
		c.warn("set", key, err)
		return false
	}
	return true
}

// RemoveSorting deletes the override for key and reports whether the store
// accepted it.
func (c *Cache) RemoveSorting(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.store.RemoveSorting(ctx, key); err != nil {
		c.warn("remove", key, err)
		return false
	}
	return true
}

// failed records a lookup error. The gallery service only sees a miss, so the
// error is counted here.
func (c *Cache) failed(operation, key string, err error) {
	metrics.OverrideOperationsTotal.WithLabelValues(operation, "error").Inc()
	c.warn(operation, key, err)
}

func (c *Cache) warn(operation, key string, err error) {
	logging.Warn("Sorting override %s failed for %s (%s backend): %v", operation, key, c.store.Backend(), err)
}
