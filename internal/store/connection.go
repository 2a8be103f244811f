// Package store provides a Postgres-backed reference implementation of
// retrieval.TextIndex, the adapter interface the core pipeline consumes
// (spec §6). The text-search engine itself is documented as an external
// collaborator; this package supplies one concrete engine so the
// pipeline has something to run against, built on Postgres full-text
// search (tsvector/tsquery) rather than a dedicated search cluster.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultMaxConnLifetime and defaultMaxConnIdleTime bound how long a
// pooled connection survives before pgxpool recycles it, independent
// of the caller-tunable pool size. Long enough that a steady query rate
// never pays reconnect latency, short enough to ride out a Postgres
// failover without stale routing.
const (
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = 30 * time.Minute
)

// ConnectionConfig holds database connection parameters for the
// reference text index's backing Postgres instance.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// Connect dials the reference index's Postgres instance and returns a
// ready, pinged connection pool. log may be nil, in which case
// slog.Default() is used.
func Connect(ctx context.Context, cfg ConnectionConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = slog.Default()
	}
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}

	poolConfig.MaxConnLifetime = defaultMaxConnLifetime
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("connected to reference index database",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database),
		slog.Int("maxConns", int(poolConfig.MaxConns)), slog.Int("minConns", int(poolConfig.MinConns)))

	return pool, nil
}
