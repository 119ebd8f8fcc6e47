package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS saved_estimates (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		project_name TEXT NOT NULL DEFAULT '',
		global_tier  TEXT NOT NULL
		             CHECK(global_tier IN ('Premium','Luxury','Ultra-Luxury')),
		total_cost   REAL NOT NULL DEFAULT 0 CHECK(total_cost >= 0),
		document     TEXT NOT NULL,
		result       TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_estimates_updated ON saved_estimates(updated_at)`,
	`CREATE TABLE IF NOT EXISTS saved_estimate_categories (
		estimate_id TEXT NOT NULL REFERENCES saved_estimates(id) ON DELETE CASCADE,
		trade       TEXT NOT NULL,
		cost        REAL NOT NULL CHECK(cost >= 0),
		PRIMARY KEY (estimate_id, trade)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_estimate_categories_trade ON saved_estimate_categories(trade)`,
	`ALTER TABLE saved_estimates ADD COLUMN catalog_version TEXT NOT NULL DEFAULT ''`,
}
