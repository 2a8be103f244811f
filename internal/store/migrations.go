package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies the parts catalog schema if it does not
// already exist.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'parts'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if parts table exists: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply parts schema: %w", err)
	}
	return nil
}
