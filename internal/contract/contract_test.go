package contract

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taebin/travelsay/internal/domain"
)

func TestDayResponse_AcceptsIDOrDayID(t *testing.T) {
	var days []DayResponse
	body := `[{"id":4,"tripDate":"2025-07-01"},{"dayId":9,"tripDate":"2025-07-02"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &days))

	require.Len(t, days, 2)
	assert.Equal(t, int64(4), days[0].ID)
	assert.Equal(t, int64(9), days[1].ID)
	assert.Equal(t, "2025-07-02", days[1].ToDomain().Label())
}

func TestDayResponse_TripDateForms(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	day := DayResponse{ID: 1, TripDate: "2025-07-01T00:00:00"}.ToDomain()
	assert.Equal(t, "2025-07-01", day.Label())
	assert.Empty(t, logs.String())

	day = DayResponse{ID: 2, TripDate: "07/01/2025"}.ToDomain()
	assert.True(t, day.TripDate.IsZero())
	assert.Contains(t, logs.String(), "could not parse trip date")
	assert.Contains(t, logs.String(), "07/01/2025")

	row := MyPlanRow{PlanID: 3, StartDate: "2025-09-10T09:00:00+09:00"}.ToDomain()
	require.NotNil(t, row.StartDate)
	assert.Equal(t, "2025-09-10", domain.FormatDate(*row.StartDate))
}

func TestCreateItemRequest_OmitsOrderNoWhenNil(t *testing.T) {
	req := CreateItemRequest{ItemFieldsRequest: ItemFieldsRequest{Title: "Check-in"}}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "orderNo")
	assert.Contains(t, string(data), `"startTime":null`)
}

func TestMyPlanRow_MissingStartDate(t *testing.T) {
	row := MyPlanRow{PlanID: 1, Title: "Jeju"}.ToDomain()
	assert.Nil(t, row.StartDate)

	row = MyPlanRow{PlanID: 1, StartDate: "2025-01-02"}.ToDomain()
	require.NotNil(t, row.StartDate)
	assert.Equal(t, "2025-01-02", domain.FormatDate(*row.StartDate))
}

func TestPlanDetailResponse_ToDomain(t *testing.T) {
	start := "09:00:00"
	resp := PlanDetailResponse{
		PlanID: 7,
		Title:  "Busan",
		Days: []DetailDay{
			{DayID: 1, TripDate: "2025-08-01", Items: []ItemResponse{{ID: 3, Title: "Beach", StartTime: &start}}},
		},
	}

	d := resp.ToDomain()
	require.Len(t, d.Days, 1)
	assert.Equal(t, "Beach", d.Days[0].Items[0].Title)
	assert.Equal(t, "09:00:00", d.Days[0].Items[0].StartClock())
}
