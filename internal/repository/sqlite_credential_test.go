package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/testutil"
)

func TestCredentialRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	cred := testutil.NewTestCredential("http://localhost:8080", testutil.WithLoginID("alice"))
	require.NoError(t, repo.Save(ctx, cred))

	got, err := repo.Get(ctx, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, cred.AccessToken, got.AccessToken)
	assert.Equal(t, "alice", got.LoginID)
	assert.Nil(t, got.ExpiresAt)
	assert.False(t, got.SavedAt.IsZero())
}

func TestCredentialRepo_SaveOverwrites(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, testutil.NewTestCredential("s", testutil.WithToken("old"))))
	require.NoError(t, repo.Save(ctx, testutil.NewTestCredential("s", testutil.WithToken("new"), testutil.WithExpiry(exp))))

	got, err := repo.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, exp.Equal(*got.ExpiresAt))
}

func TestCredentialRepo_GetNotFound(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialRepo_Delete(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestCredential("s")))
	require.NoError(t, repo.Delete(ctx, "s"))
	require.NoError(t, repo.Delete(ctx, "s"))

	_, err := repo.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialRepo_ScopedPerServer(t *testing.T) {
	repo := NewSQLiteCredentialRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.NewTestCredential("a", testutil.WithToken("ta"))))
	require.NoError(t, repo.Save(ctx, testutil.NewTestCredential("b", testutil.WithToken("tb"))))
	require.NoError(t, repo.Delete(ctx, "a"))

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "tb", got.AccessToken)
}
