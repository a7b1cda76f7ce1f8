// Package postgres stores character sheets in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/keeper/internal/config"
)

// applicationName tags keeper sessions in pg_stat_activity.
const applicationName = "keeper"

// Pool is the connection pool behind SheetRepository.
type Pool struct {
	db *pgxpool.Pool
}

// NewPool connects to the database described by cfg. It checks that the
// server answers but not that the sheet table exists; Ready does that.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	db, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening sheet pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	return &Pool{db: db}, nil
}

// Ready reports whether the sheet table can be queried within timeout. An
// unmigrated database is not ready.
//
// Precondition: timeout > 0 and the pool must not be closed.
func (p *Pool) Ready(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var present bool
	if err := p.db.QueryRow(ctx, `SELECT to_regclass($1::text) IS NOT NULL`, sheetTable).Scan(&present); err != nil {
		return fmt.Errorf("checking %s: %w", sheetTable, err)
	}
	if !present {
		return fmt.Errorf("table %s does not exist; apply migrations", sheetTable)
	}
	return nil
}

// Close releases every pooled connection.
func (p *Pool) Close() {
	p.db.Close()
}

// DB returns the pgx pool for SheetRepository and migrations.
func (p *Pool) DB() *pgxpool.Pool {
	return p.db
}
