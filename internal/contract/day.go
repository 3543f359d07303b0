package contract

import (
	"encoding/json"

	"github.com/taebin/travelsay/internal/domain"
)

// DayResponse is a day as returned by the backend. Older endpoints name the
// identifier "dayId" instead of "id"; both decode into ID.
type DayResponse struct {
	ID       int64  `json:"id"`
	TripDate string `json:"tripDate"`
}

func (d *DayResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       *int64 `json:"id"`
		DayID    *int64 `json:"dayId"`
		TripDate string `json:"tripDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID != nil:
		d.ID = *raw.ID
	case raw.DayID != nil:
		d.ID = *raw.DayID
	}
	d.TripDate = raw.TripDate
	return nil
}

func (d DayResponse) ToDomain() domain.Day {
	date, _ := parseTripDate(d.TripDate)
	return domain.Day{ID: d.ID, TripDate: date}
}

func DaysToDomain(in []DayResponse) []domain.Day {
	out := make([]domain.Day, 0, len(in))
	for _, d := range in {
		out = append(out, d.ToDomain())
	}
	return out
}

type CreateDayRequest struct {
	TripDate string `json:"tripDate"`
}
