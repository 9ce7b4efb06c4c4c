package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: Index the listing's hot paths. The default listing
	// orders by date_posted, and every mutation is scoped by owner.
	`CREATE INDEX IF NOT EXISTS idx_items_date_posted ON items(date_posted DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,

	// Migration 2: Filtered listings hit status and category together.
	`CREATE INDEX IF NOT EXISTS idx_items_status ON items(status)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
