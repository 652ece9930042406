// Package database owns the PostgreSQL pool for the player statistics store
// and the embedded schema migrations.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of pgxpool the health checks and server wiring need.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolOptions tunes the statistics connection pool. Zero values fall back to
// the package defaults; the pool stays small because every request touches
// one player's rows at most.
type PoolOptions struct {
	MaxConns    int32
	MinConns    int32
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// NewPool connects to the statistics database and verifies the connection
// with a ping before returning.
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if opts.MaxConns <= 0 {
		opts.MaxConns = DefaultMaxConnections
	}
	if opts.MinConns <= 0 {
		opts.MinConns = DefaultMinConnections
	}
	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnIdleTime = opts.MaxIdleTime
	config.MaxConnLifetime = opts.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Info(LogMsgConnectedToStatsDatabase,
		"max_conns", opts.MaxConns,
		"min_conns", opts.MinConns,
	)
	return pool, nil
}
