package editor

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/domain"
)

func TestDayCollection_AddDuplicateLeavesCollectionUnchanged(t *testing.T) {
	f := newFixture(t)
	days := NewDayCollection(f.client, NewItemSequence(f.client))
	ctx := context.Background()
	require.NoError(t, days.Load(ctx, f.planID))
	before := days.Days()

	_, err := days.Add(ctx, f.planID, "2025-05-01")

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "a day with this date already exists", conflict.Message)
	assert.Equal(t, before, days.Days())
	assert.Equal(t, 1, f.backend.DayCount(f.planID))
}

func TestDayCollection_AddConflictUsesServerMessage(t *testing.T) {
	f := newFixture(t)
	days := NewDayCollection(f.client, NewItemSequence(f.client))
	ctx := context.Background()
	require.NoError(t, days.Load(ctx, f.planID))

	f.backend.FailNext(http.MethodPost, "/api/trips/plans/1/days", http.StatusConflict)
	_, err := days.Add(ctx, f.planID, "2025-05-09")

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "forced failure 409", conflict.Message)
}

type bareRejectDays struct{}

func (bareRejectDays) ListDays(context.Context, int64) ([]domain.Day, error) { return nil, nil }
func (bareRejectDays) DeleteDay(context.Context, int64) error                { return nil }
func (bareRejectDays) CreateDay(context.Context, int64, string) (*domain.Day, error) {
	return nil, &api.Error{Status: http.StatusBadRequest, Message: "HTTP 400"}
}

func TestDayCollection_AddConflictWithoutMessageUsesDefault(t *testing.T) {
	days := NewDayCollection(bareRejectDays{}, NewItemSequence(nil))

	_, err := days.Add(context.Background(), 1, "2025-05-01")

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, DuplicateDateMessage, conflict.Message)
}

func TestDayCollection_AddInvalidDateNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	days := NewDayCollection(f.client, NewItemSequence(f.client))

	_, err := days.Add(context.Background(), f.planID, "05/01/2025")
	assert.Equal(t, FailureValidation, Classify(err))
	assert.Zero(t, f.backend.CountRequests(http.MethodPost, "/api/trips/plans/1/days"))
}

func TestDayCollection_AddReloadsInDateOrder(t *testing.T) {
	f := newFixture(t)
	days := NewDayCollection(f.client, NewItemSequence(f.client))
	ctx := context.Background()

	added, err := days.Add(ctx, f.planID, "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-30", added.Label())

	list := days.Days()
	require.Len(t, list, 2)
	assert.Equal(t, "2025-04-30", list[0].Label())
	assert.Equal(t, "2025-05-01", list[1].Label())
}

func TestDayCollection_SelectLoadsItems(t *testing.T) {
	f := newFixture(t, "A", "B")
	items := NewItemSequence(f.client)
	days := NewDayCollection(f.client, items)
	ctx := context.Background()
	require.NoError(t, days.Load(ctx, f.planID))

	require.NoError(t, days.Select(ctx, f.dayID))
	current, ok := days.Current()
	require.True(t, ok)
	assert.Equal(t, f.dayID, current.ID)
	assert.Equal(t, 2, items.Len())

	assert.ErrorIs(t, days.Select(ctx, 999), ErrUnknownDay)
	current, _ = days.Current()
	assert.Equal(t, f.dayID, current.ID)
}

func TestDayCollection_RemoveCurrentClearsSelection(t *testing.T) {
	f := newFixture(t, "A")
	items := NewItemSequence(f.client)
	days := NewDayCollection(f.client, items)
	ctx := context.Background()
	require.NoError(t, days.Load(ctx, f.planID))
	require.NoError(t, days.Select(ctx, f.dayID))

	require.NoError(t, days.Remove(ctx, f.dayID))
	_, ok := days.Current()
	assert.False(t, ok)
	assert.Zero(t, days.Len())
	assert.Zero(t, items.Len())
}
