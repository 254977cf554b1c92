package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	name    string
	up      string
}

// Statements stay within the subset SQLite and PostgreSQL share. Timestamps
// are unix nanoseconds so both dialects round-trip them exactly.
var migrations = []migration{
	{
		version: 1,
		name:    "create_feed_cache",
		up: `
			CREATE TABLE IF NOT EXISTS feed_cache (
				id INTEGER PRIMARY KEY,
				cached_at BIGINT NOT NULL
			)`,
	},
	{
		version: 2,
		name:    "create_feed_images",
		up: `
			CREATE TABLE IF NOT EXISTS feed_images (
				position INTEGER PRIMARY KEY,
				id TEXT NOT NULL,
				description TEXT,
				location TEXT,
				url TEXT NOT NULL
			)`,
	},
}

// Migrate applies pending migrations, each in its own transaction.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	tm := NewTransactionManager(db)
	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			exec := GetExecutor(ctx, db)
			if _, err := exec.ExecContext(ctx, m.up); err != nil {
				return fmt.Errorf("apply: %w", err)
			}
			_, err := exec.ExecContext(ctx,
				exec.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
				m.version, m.name,
			)
			if err != nil {
				return fmt.Errorf("record: %w", err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}
