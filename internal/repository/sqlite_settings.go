package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taebin/travelsay/internal/db"
)

// Well-known settings keys.
const (
	SettingActivePlan = "active_plan"
)

// SQLiteSettingsRepo implements SettingsRepo.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteSettingsRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteSettingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}
