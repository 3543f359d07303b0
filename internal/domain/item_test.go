package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestItemFieldsValidate(t *testing.T) {
	assert.Error(t, ItemFields{Title: ""}.Validate())
	assert.NoError(t, ItemFields{Title: "Lunch"}.Validate())

	long := strings.Repeat("m", MaxMemoLen+1)
	assert.Error(t, ItemFields{Title: "Lunch", Memo: &long}.Validate())
}

func TestItemPatchApply_KeepsUntouchedFields(t *testing.T) {
	base := ItemFields{
		Title:     "Museum",
		StartTime: strPtr("10:00"),
		Amount:    intPtr(12000),
		Merchant:  strPtr("Louvre"),
	}

	got := ItemPatch{Title: strPtr("  Museum tour ")}.Apply(base)

	assert.Equal(t, "Museum tour", got.Title)
	assert.Equal(t, "10:00", *got.StartTime)
	assert.Equal(t, 12000, *got.Amount)
	assert.Equal(t, "Louvre", *got.Merchant)
	assert.Nil(t, got.Memo)
}

func TestItemPatchApply_BlankClears(t *testing.T) {
	base := ItemFields{Title: "Dinner", Merchant: strPtr("Bistro"), Amount: intPtr(5)}

	got := ItemPatch{Merchant: strPtr(""), ClearAmount: true}.Apply(base)

	assert.Nil(t, got.Merchant)
	assert.Nil(t, got.Amount)
}

func TestItemPatchEmpty(t *testing.T) {
	assert.True(t, ItemPatch{}.Empty())
	assert.False(t, ItemPatch{ClearAmount: true}.Empty())
}

func TestParseAmount(t *testing.T) {
	n, err := ParseAmount("15,000")
	require.NoError(t, err)
	assert.Equal(t, 15000, *n)

	n, err = ParseAmount(" ")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, -1, d.Delta())
	assert.Equal(t, 1, DirectionDown.Delta())

	_, err = ParseDirection("left")
	assert.Error(t, err)
}
