package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/db"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return db.NewSQLiteUnitOfWork(conn)
}

func readSetting(t *testing.T, uow *db.SQLiteUnitOfWork, key string) (string, bool) {
	t.Helper()
	var val string
	var found bool
	require.NoError(t, uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&val); err == nil {
			found = true
		}
		return nil
	}))
	return val, found
}

func insertSetting(ctx context.Context, tx db.DBTX, key, val string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, val)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSetting(ctx, tx, "k1", "v1")
	})
	require.NoError(t, err)

	val, found := readSetting(t, uow, "k1")
	assert.True(t, found)
	assert.Equal(t, "v1", val)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertSetting(ctx, tx, "k2", "v2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, found := readSetting(t, uow, "k2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertSetting(ctx, tx, "k3", "v3")
			panic("boom")
		})
	})

	_, found := readSetting(t, uow, "k3")
	assert.False(t, found, "row should not exist after panic rollback")
}
