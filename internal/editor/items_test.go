package editor

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestItemSequence_LoadKeepsServerOrder(t *testing.T) {
	f := newFixture(t, "Breakfast", "Museum", "Dinner")
	seq := f.loadedSequence(t)

	assert.Equal(t, []string{"Breakfast", "Museum", "Dinner"}, titles(seq))
	assert.Equal(t, f.dayID, seq.DayID())
	for i, it := range seq.Items() {
		assert.Equal(t, i+1, it.OrderNo)
	}
}

func TestItemSequence_LoadFailureKeepsPrevious(t *testing.T) {
	f := newFixture(t, "A", "B")
	seq := f.loadedSequence(t)
	f.backend.FailItems(f.dayID)

	err := seq.Load(context.Background(), f.dayID)
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(seq))
}

func TestItemSequence_CreateAppendsOrInserts(t *testing.T) {
	f := newFixture(t, "A", "B")
	seq := f.loadedSequence(t)
	ctx := context.Background()

	require.NoError(t, seq.Create(ctx, f.dayID, domain.ItemFields{Title: "C"}, nil))
	assert.Equal(t, []string{"A", "B", "C"}, titles(seq))

	require.NoError(t, seq.Create(ctx, f.dayID, domain.ItemFields{Title: "First"}, intPtr(1)))
	assert.Equal(t, []string{"First", "A", "B", "C"}, titles(seq))
}

func TestItemSequence_CreateRejectsBadPosition(t *testing.T) {
	f := newFixture(t, "A")
	seq := f.loadedSequence(t)

	err := seq.Create(context.Background(), f.dayID, domain.ItemFields{Title: "X"}, intPtr(5))
	require.Error(t, err)
	assert.Equal(t, FailureConflict, Classify(err))
	assert.Equal(t, []string{"A"}, titles(seq))
}

func TestItemSequence_CreateRequiresTitleBeforeRequest(t *testing.T) {
	f := newFixture(t)
	seq := f.loadedSequence(t)

	err := seq.Create(context.Background(), f.dayID, domain.ItemFields{Title: "  "}, nil)
	require.Error(t, err)
	assert.Equal(t, FailureValidation, Classify(err))
	assert.Zero(t, f.backend.CountRequests(http.MethodPost, "/api/trips/days/2/items"))
}

func TestItemSequence_UpdateMergesPatch(t *testing.T) {
	f := newFixture(t, "Breakfast", "Museum")
	seq := f.loadedSequence(t)
	first := seq.Items()[0]

	err := seq.Update(context.Background(), first.ID, domain.ItemPatch{Memo: strPtr("near the port"), Amount: intPtr(12000)})
	require.NoError(t, err)

	stored, ok := f.backend.Item(first.ID)
	require.True(t, ok)
	assert.Equal(t, "Breakfast", stored.Title)
	require.NotNil(t, stored.StartTime)
	assert.Equal(t, "09:00:00", *stored.StartTime)
	assert.Equal(t, "near the port", *stored.Memo)
	assert.Equal(t, 12000, *stored.Amount)

	err = seq.Update(context.Background(), first.ID, domain.ItemPatch{Memo: strPtr(""), StartTime: strPtr("")})
	require.NoError(t, err)
	stored, _ = f.backend.Item(first.ID)
	assert.Nil(t, stored.Memo)
	assert.Nil(t, stored.StartTime)
	assert.Equal(t, 12000, *stored.Amount)
	assert.Nil(t, seq.Items()[0].StartTime)
}

func TestItemSequence_UpdateUnknownItem(t *testing.T) {
	f := newFixture(t, "A")
	seq := f.loadedSequence(t)

	err := seq.Update(context.Background(), 999, domain.ItemPatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrItemNotLoaded)
}

func TestItemSequence_MoveFirstUpIsRejected(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	seq := f.loadedSequence(t)
	before := seq.Items()
	loadsBefore := f.backend.CountRequests(http.MethodGet, "/api/trips/days/2/items")

	err := seq.Move(context.Background(), before[0].ID, domain.DirectionUp)

	var moveErr *MoveError
	require.True(t, errors.As(err, &moveErr))
	assert.Equal(t, before[0].ID, moveErr.ItemID)
	assert.Equal(t, FailureConflict, Classify(err))
	assert.Equal(t, before, seq.Items())
	assert.Equal(t, loadsBefore, f.backend.CountRequests(http.MethodGet, "/api/trips/days/2/items"))
	assert.Equal(t, []string{"A", "B", "C"}, f.backend.ItemTitles(f.dayID))
}

func TestItemSequence_MoveLastDownIsRejected(t *testing.T) {
	f := newFixture(t, "A", "B")
	seq := f.loadedSequence(t)

	err := seq.Move(context.Background(), seq.Items()[1].ID, domain.DirectionDown)
	var moveErr *MoveError
	assert.True(t, errors.As(err, &moveErr))
}

func TestItemSequence_MoveDownSwaps(t *testing.T) {
	f := newFixture(t, "A", "B", "C")
	seq := f.loadedSequence(t)

	require.NoError(t, seq.Move(context.Background(), seq.Items()[0].ID, domain.DirectionDown))
	assert.Equal(t, []string{"B", "A", "C"}, titles(seq))
}

func TestItemSequence_DeleteShrinksByOneInOrder(t *testing.T) {
	f := newFixture(t, "A", "B", "C", "D")
	seq := f.loadedSequence(t)

	require.NoError(t, seq.Delete(context.Background(), seq.Items()[1].ID))

	items := seq.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"A", "C", "D"}, titles(seq))
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].OrderNo, items[i].OrderNo)
	}
}

func TestItemSequence_ShiftAll(t *testing.T) {
	f := newFixture(t, "A", "B")
	seq := f.loadedSequence(t)
	ctx := context.Background()
	f.backend.SeedItem(f.dayID, "Untimed", "")
	require.NoError(t, seq.Load(ctx, f.dayID))

	require.NoError(t, seq.ShiftAll(ctx, f.dayID, "+01:30"))
	items := seq.Items()
	assert.Equal(t, "10:30:00", *items[0].StartTime)
	assert.Equal(t, "11:30:00", *items[1].StartTime)
	assert.Nil(t, items[2].StartTime)

	require.NoError(t, seq.ShiftAll(ctx, f.dayID, "-01:30"))
	assert.Equal(t, "09:00:00", *seq.Items()[0].StartTime)
}

func TestItemSequence_ShiftAllValidatesBeforeRequest(t *testing.T) {
	f := newFixture(t, "A")
	seq := f.loadedSequence(t)

	err := seq.ShiftAll(context.Background(), f.dayID, "25:00")
	require.Error(t, err)
	assert.Equal(t, FailureValidation, Classify(err))
	assert.Zero(t, f.backend.CountRequests(http.MethodPatch, "/api/trips/days/2/items/shift-time"))
}

func TestItemSequence_ShiftOutOfDayIsConflict(t *testing.T) {
	f := newFixture(t, "A", "B")
	seq := f.loadedSequence(t)
	before := seq.Items()

	err := seq.ShiftAll(context.Background(), f.dayID, "+15:00")
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, before, seq.Items())
}

func TestItemSequence_RangesFollowPosition(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedItem(f.dayID, "Breakfast", "09:00")
	f.backend.SeedItem(f.dayID, "Walk", "10:30")
	f.backend.SeedItem(f.dayID, "Free", "")
	seq := f.loadedSequence(t)

	assert.Equal(t, "오전 9:00 ~ 오전 10:30", seq.Range(0))
	assert.Equal(t, "오전 10:30 ~ —", seq.Range(1))
	assert.Equal(t, "", seq.Range(2))
}

func TestItemSequence_RelocateAcrossDays(t *testing.T) {
	f := newFixture(t, "A", "B")
	other := f.backend.SeedDay(f.planID, "2025-05-02")
	f.backend.SeedItem(other, "X", "")
	seq := f.loadedSequence(t)

	require.NoError(t, seq.Relocate(context.Background(), seq.Items()[0].ID, other, intPtr(1)))
	assert.Equal(t, []string{"B"}, titles(seq))
	assert.Equal(t, 1, seq.Items()[0].OrderNo)
	assert.Equal(t, []string{"A", "X"}, f.backend.ItemTitles(other))
}

func TestItemSequence_RelocateToForeignPlanIsConflict(t *testing.T) {
	f := newFixture(t, "A")
	foreignPlan := f.backend.SeedPlan("alice", "Other")
	foreignDay := f.backend.SeedDay(foreignPlan, "2025-05-02")
	seq := f.loadedSequence(t)

	err := seq.Relocate(context.Background(), seq.Items()[0].ID, foreignDay, nil)
	assert.Equal(t, FailureConflict, Classify(err))
	assert.Equal(t, []string{"A"}, titles(seq))
}
