package overrides

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/metrics"
)

// MemoryStore keeps overrides in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Override
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Override)}
}

// GetSorting implements Store.
func (s *MemoryStore) GetSorting(_ context.Context, key string) (mediatypes.SortingMethod, error) {
	defer metrics.RecordStoreOperation(BackendMemory, "get", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.entries[key]
	if !ok {
		return 0, ErrNotFound
	}
	return o.Method, nil
}

// SetSorting implements Store.
func (s *MemoryStore) SetSorting(_ context.Context, key string, method mediatypes.SortingMethod) error {
	defer metrics.RecordStoreOperation(BackendMemory, "set", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Override{Key: key, Method: method, UpdatedAt: time.Now().UTC()}
	return nil
}

// RemoveSorting implements Store.
func (s *MemoryStore) RemoveSorting(_ context.Context, key string) error {
	defer metrics.RecordStoreOperation(BackendMemory, "remove", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]Override, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Override, 0, len(s.entries))
	for _, o := range s.entries {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Override) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	clear(s.entries)
	return n, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Backend implements Store.
func (s *MemoryStore) Backend() string { return BackendMemory }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
