package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		server       TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		login_id     TEXT NOT NULL DEFAULT '',
		saved_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT ''
	)`,
	`ALTER TABLE credentials ADD COLUMN expires_at TEXT`,
}

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
