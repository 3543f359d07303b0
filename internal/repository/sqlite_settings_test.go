package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/db"
	"github.com/taebin/travelsay/internal/testutil"
)

func TestSettingsRepo_SetGetDelete(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, SettingActivePlan)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, SettingActivePlan, "12"))
	require.NoError(t, repo.Set(ctx, SettingActivePlan, "13"))

	v, err := repo.Get(ctx, SettingActivePlan)
	require.NoError(t, err)
	assert.Equal(t, "13", v)

	require.NoError(t, repo.Delete(ctx, SettingActivePlan))
	_, err = repo.Get(ctx, SettingActivePlan)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepos_ShareTransaction(t *testing.T) {
	conn := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(conn)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, NewSQLiteCredentialRepo(tx).Save(ctx, testutil.NewTestCredential("s")))
		require.NoError(t, NewSQLiteSettingsRepo(tx).Set(ctx, SettingActivePlan, "1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteCredentialRepo(conn).Get(ctx, "s")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = NewSQLiteSettingsRepo(conn).Get(ctx, SettingActivePlan)
	assert.ErrorIs(t, err, ErrNotFound)
}
