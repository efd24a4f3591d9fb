package overrides

import (
	"context"
	"errors"
	"time"

	"gallery-sorter/internal/mediatypes"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// ErrNotFound is returned when no override is stored for a key.
var ErrNotFound = errors.New("sorting override not found")

// Override is one stored sorting override.
type Override struct {
	Key       string                   `json:"key"`
	Method    mediatypes.SortingMethod `json:"method"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// Store persists sorting overrides.
type Store interface {
	// GetSorting returns the override for key or ErrNotFound.
	GetSorting(ctx context.Context, key string) (mediatypes.SortingMethod, error)
	// SetSorting stores or replaces the override for key.
	SetSorting(ctx context.Context, key string, method mediatypes.SortingMethod) error
	// RemoveSorting deletes the override for key. Removing a missing key is not an error.
	RemoveSorting(ctx context.Context, key string) error
	// List returns all overrides ordered by key.
	List(ctx context.Context) ([]Override, error)
	// Clear removes all overrides and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// Count returns the number of stored overrides.
	Count(ctx context.Context) (int, error)
	// Backend names the storage backend.
	Backend() string
	Close() error
}
