package startup

import (
	"context"
	"fmt"
	"path/filepath"

	"gallery-sorter/internal/database"
	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/overrides"
)

// OpenOverrideStore opens the override store selected by cfg.Overrides. The
// sqlite and badger backends create cfg.Overrides.Path if needed.
func OpenOverrideStore(ctx context.Context, cfg OverridesConfig) (overrides.Store, error) {
	if cfg.Backend == overrides.BackendMemory {
		logging.Info("  Overrides: in memory (not persisted)")
		return overrides.NewMemoryStore(), nil
	}

	dir, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve overrides path: %w", err)
	}
	if err := ensureDirectory(dir, "overrides"); err != nil {
		return nil, fmt.Errorf("overrides directory error: %w", err)
	}
	if err := testWriteAccess(dir); err != nil {
		return nil, fmt.Errorf("overrides directory is not writable: %w", err)
	}

	switch cfg.Backend {
	case overrides.BackendSQLite:
		return database.New(ctx, filepath.Join(dir, database.FileName))
	case overrides.BackendBadger:
		logging.Info("  Overrides: badger at %s", filepath.Join(dir, "badger"))
		return overrides.OpenBadgerStore(filepath.Join(dir, "badger"))
	}
	return nil, fmt.Errorf("unknown overrides backend %q", cfg.Backend)
}
