package overrides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/metrics"
)

const badgerKeyPrefix = "sorting_override:"

// BadgerStore keeps overrides in BadgerDB. Keys are prefixed so the database
// can be shared with other data.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a BadgerDB in dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for overrides: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open BadgerDB. Close does not close db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// GetSorting implements Store.
func (s *BadgerStore) GetSorting(_ context.Context, key string) (mediatypes.SortingMethod, error) {
	defer metrics.RecordStoreOperation(BackendBadger, "get", time.Now())

	var o Override
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get override: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &o)
		})
	})
	if err != nil {
		return 0, err
	}
	return o.Method, nil
}

// SetSorting implements Store.
func (s *BadgerStore) SetSorting(_ context.Context, key string, method mediatypes.SortingMethod) error {
	defer metrics.RecordStoreOperation(BackendBadger, "set", time.Now())

	data, err := json.Marshal(Override{Key: key, Method: method, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal override: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+key), data)
	})
}

// RemoveSorting implements Store.
func (s *BadgerStore) RemoveSorting(_ context.Context, key string) error {
	defer metrics.RecordStoreOperation(BackendBadger, "remove", time.Now())

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(badgerKeyPrefix + key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete override: %w", err)
		}
		return nil
	})
}

// List implements Store. Badger iterates keys in byte order.
func (s *BadgerStore) List(_ context.Context) ([]Override, error) {
	defer metrics.RecordStoreOperation(BackendBadger, "list", time.Now())

	out := []Override{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var o Override
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &o)
			}); err != nil {
				return fmt.Errorf("decode override %s: %w", it.Item().Key(), err)
			}
			out = append(out, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Clear implements Store. It uses DropPrefix, so the number of overrides is
// not bounded by badger's transaction size.
func (s *BadgerStore) Clear(_ context.Context) (int, error) {
	defer metrics.RecordStoreOperation(BackendBadger, "clear", time.Now())

	n, err := s.count()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		return 0, fmt.Errorf("drop overrides: %w", err)
	}
	return n, nil
}

// Count implements Store.
func (s *BadgerStore) Count(_ context.Context) (int, error) {
	return s.count()
}

func (s *BadgerStore) count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count overrides: %w", err)
	}
	return n, nil
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return BackendBadger }

// Close implements Store.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
