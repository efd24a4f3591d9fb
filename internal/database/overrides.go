package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/overrides"
)

// GetSorting returns the override stored for key or overrides.ErrNotFound.
func (d *Database) GetSorting(ctx context.Context, key string) (mediatypes.SortingMethod, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var text string
	err = d.db.QueryRowContext(ctx, "SELECT method FROM sorting_overrides WHERE dir_key = ?", key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return 0, overrides.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	method, err := mediatypes.ParseSortingMethod(text)
	if err != nil {
		return 0, fmt.Errorf("stored override for %s: %w", key, err)
	}
	return method, nil
}

// SetSorting stores or replaces the override for key.
func (d *Database) SetSorting(ctx context.Context, key string, method mediatypes.SortingMethod) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set", start, err) }()

	text, err := method.MarshalText()
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO sorting_overrides (dir_key, method, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(dir_key) DO UPDATE SET
			method = excluded.method,
			updated_at = excluded.updated_at
	`, key, string(text), time.Now().Unix())
	return err
}

// RemoveSorting deletes the override for key. A missing key is not an error.
func (d *Database) RemoveSorting(ctx context.Context, key string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("remove", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, "DELETE FROM sorting_overrides WHERE dir_key = ?", key)
	return err
}

// List returns all overrides ordered by key. Rows with an unreadable method
// are skipped.
func (d *Database) List(ctx context.Context) ([]overrides.Override, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT dir_key, method, updated_at FROM sorting_overrides ORDER BY dir_key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []overrides.Override{}
	for rows.Next() {
		var key, text string
		var updated int64
		if err = rows.Scan(&key, &text, &updated); err != nil {
			return nil, err
		}
		method, parseErr := mediatypes.ParseSortingMethod(text)
		if parseErr != nil {
			continue
		}
		out = append(out, overrides.Override{
			Key:       key,
			Method:    method,
			UpdatedAt: time.Unix(updated, 0).UTC(),
		})
	}
	err = rows.Err()
	return out, err
}

// Clear removes every override and returns how many were removed.
func (d *Database) Clear(ctx context.Context) (int, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("clear", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM sorting_overrides")
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// Count returns the number of stored overrides.
func (d *Database) Count(ctx context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sorting_overrides").Scan(&n)
	return n, err
}

// Backend returns "sqlite".
func (d *Database) Backend() string {
	return overrides.BackendSQLite
}
