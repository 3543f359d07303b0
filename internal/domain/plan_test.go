package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanValidate_RequiresTitle(t *testing.T) {
	p := &Plan{Title: "   "}
	err := p.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestPlanValidate_TitleTooLong(t *testing.T) {
	p := &Plan{Title: strings.Repeat("가", MaxTitleLen+1)}
	assert.Error(t, p.Validate())

	p.Title = strings.Repeat("가", MaxTitleLen)
	assert.NoError(t, p.Validate())
}

func TestPlanSaved(t *testing.T) {
	assert.False(t, (&Plan{}).Saved())
	assert.True(t, (&Plan{ID: 3}).Saved())
}

func TestPlanRowStatus(t *testing.T) {
	today := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	past := time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)
	same := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, PlanExpired, PlanRow{StartDate: &past}.Status(today))
	assert.Equal(t, PlanUpcoming, PlanRow{StartDate: &same}.Status(today))
	assert.Equal(t, PlanUpcoming, PlanRow{}.Status(today))
	assert.Equal(t, PlanCompleted, PlanRow{StartDate: &past, IsCompleted: true}.Status(today))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", FormatDate(d))

	_, err = ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("03/01/2025")
	assert.Error(t, err)

	assert.Equal(t, "-", FormatDate(time.Time{}))
}
