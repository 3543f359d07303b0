package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taebin/travelsay/internal/db"
	"github.com/taebin/travelsay/internal/domain"
)

// SQLiteCredentialRepo implements CredentialRepo.
type SQLiteCredentialRepo struct {
	db db.DBTX
}

func NewSQLiteCredentialRepo(conn db.DBTX) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: conn}
}

func (r *SQLiteCredentialRepo) Get(ctx context.Context, server string) (*domain.Credential, error) {
	query := `SELECT server, access_token, login_id, saved_at, expires_at
		FROM credentials WHERE server = ?`
	row := r.db.QueryRowContext(ctx, query, server)

	var (
		c         domain.Credential
		savedAt   string
		expiresAt sql.NullString
	)
	if err := row.Scan(&c.Server, &c.AccessToken, &c.LoginID, &savedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("credential for %s: %w", server, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning credential: %w", err)
	}
	c.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	c.ExpiresAt = parseNullableTime(expiresAt, time.RFC3339)
	return &c, nil
}

func (r *SQLiteCredentialRepo) Save(ctx context.Context, c *domain.Credential) error {
	savedAt := nowUTC()
	if !c.SavedAt.IsZero() {
		savedAt = c.SavedAt.UTC().Format(time.RFC3339)
	}
	query := `INSERT INTO credentials (server, access_token, login_id, saved_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(server) DO UPDATE SET
			access_token = excluded.access_token,
			login_id     = excluded.login_id,
			saved_at     = excluded.saved_at,
			expires_at   = excluded.expires_at`
	_, err := r.db.ExecContext(ctx, query,
		c.Server,
		c.AccessToken,
		c.LoginID,
		savedAt,
		nullableTimeToString(c.ExpiresAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Delete is a no-op when no credential is stored.
func (r *SQLiteCredentialRepo) Delete(ctx context.Context, server string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE server = ?`, server); err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
