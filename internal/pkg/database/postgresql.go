package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultMinConns = 2

type DB struct {
	*pgxpool.Pool
}

// NewPostgreSQLDB opens a pool and pings it. Pool size is taken from the DSN
// (pool_max_conns).
func NewPostgreSQLDB(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}

	// Connection pool settings
	if config.MinConns == 0 {
		config.MinConns = min(defaultMinConns, config.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// TxFunc runs fn inside a transaction. Repositories reached through the ctx
// handed to fn share it.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// NoTx runs fn directly. Used with stores that have no transactions.
func NoTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
