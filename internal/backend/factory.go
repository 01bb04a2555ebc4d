// Package backend selects the storage implementation named in configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/hongminglow/finance-tracker-be/internal/config"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
	"github.com/hongminglow/finance-tracker-be/internal/storage/memory"
	"github.com/hongminglow/finance-tracker-be/internal/storage/postgres"
)

// Open returns the configured store. Callers own Close.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		return store, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
