// Package storage opens the character sheet store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/keeper/internal/config"
	"github.com/cory-johannsen/keeper/internal/game/sheet"
	"github.com/cory-johannsen/keeper/internal/storage/flatfile"
	"github.com/cory-johannsen/keeper/internal/storage/postgres"
)

// ReadyTimeout bounds a single readiness check.
const ReadyTimeout = 2 * time.Second

// Backend is an opened sheet store.
type Backend struct {
	Store sheet.Store
	// Ready reports whether Store can serve requests.
	Ready func(ctx context.Context) error
	// Close releases the store. It is safe to call more than once.
	Close func()
}

// Open returns the backend for cfg.Storage.Backend.
//
// Precondition: cfg must have passed Validate.
// Postcondition: On success every Backend field is non-nil.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		s, err := flatfile.New(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: s, Ready: dirReady(s.Dir()), Close: func() {}}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: postgres.NewSheetRepository(pool.DB()),
			Ready: func(ctx context.Context) error { return pool.Ready(ctx, ReadyTimeout) },
			Close: pool.Close,
		}, nil

	case config.BackendMemory:
		return &Backend{
			Store: sheet.NewMemoryStore(),
			Ready: func(context.Context) error { return nil },
			Close: func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func dirReady(dir string) func(context.Context) error {
	return func(context.Context) error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("sheet directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("sheet directory %s is not a directory", dir)
		}
		return nil
	}
}
