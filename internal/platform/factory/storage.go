// Package factory wires configuration to concrete storage backends.
package factory

import (
	"context"
	"fmt"

	"github.com/piyushKumar-1/betterbe/internal/config"
	"github.com/piyushKumar-1/betterbe/internal/store"
	"github.com/piyushKumar-1/betterbe/internal/store/postgres"
	"github.com/piyushKumar-1/betterbe/internal/store/sqlite"
)

// NewStore selects the storage backend based on cfg.DBDriver, verifies
// connectivity and applies the schema.
func NewStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			return nil, err
		}
		return sqlite.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
