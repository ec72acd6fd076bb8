package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	itemsTable        = "items"
	reviewEventsTable = "review_events"
)

// The DDL is portable across SQLite and Postgres: timestamps are unix
// milliseconds in BIGINT columns and ids are UUID strings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		content TEXT NOT NULL,
		flags TEXT NOT NULL DEFAULT '',
		next_review_at BIGINT NOT NULL,
		interval_days INTEGER NOT NULL DEFAULT 0,
		ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		consecutive_correct INTEGER NOT NULL DEFAULT 0,
		forgot_count INTEGER NOT NULL DEFAULT 0,
		last_review_at BIGINT,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS items_owner_due ON items (owner_id, next_review_at)`,
	`CREATE INDEX IF NOT EXISTS items_owner_created ON items (owner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS review_events (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		owner_id TEXT NOT NULL,
		grade TEXT NOT NULL,
		interval_days INTEGER NOT NULL,
		ease_factor DOUBLE PRECISION NOT NULL,
		reviewed_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS review_events_owner_time ON review_events (owner_id, reviewed_at)`,
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
