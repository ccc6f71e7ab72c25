package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "primitive-db"

	// Schema introspection runs one query at a time.
	maxConns = 2
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

func poolConfig(url string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %v", err)
	}
	cfg.MaxConns = maxConns
	cfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	return cfg, nil
}

// GetPool returns the process-wide pool, connecting to url and pinging the
// server on first use. Later calls return the same pool and ignore url.
func GetPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		cfg, err := poolConfig(url)
		if err != nil {
			poolErr = err
			return
		}

		pool, poolErr = pgxpool.NewWithConfig(ctx, cfg)
		if poolErr != nil {
			poolErr = fmt.Errorf("unable to create connection pool: %v", poolErr)
			return
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			pool = nil
			poolErr = fmt.Errorf("unable to ping database: %v", err)
		}
	})

	return pool, poolErr
}

// ClosePool closes the connection pool (should be called on application shutdown)
func ClosePool() {
	if pool != nil {
		pool.Close()
	}
}
