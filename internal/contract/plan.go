// Package contract defines the JSON bodies exchanged with the trip backend
// and their mapping onto domain types.
package contract

import "github.com/taebin/travelsay/internal/domain"

type PlanResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	IsPublic    bool   `json:"isPublic"`
	IsCompleted bool   `json:"isCompleted"`
}

func (r PlanResponse) ToDomain() domain.Plan {
	return domain.Plan{ID: r.ID, Title: r.Title, IsPublic: r.IsPublic, IsCompleted: r.IsCompleted}
}

type CreatePlanRequest struct {
	Title    string `json:"title"`
	IsPublic bool   `json:"isPublic"`
}

type UpdatePlanRequest struct {
	Title       string `json:"title"`
	IsPublic    bool   `json:"isPublic"`
	IsCompleted bool   `json:"isCompleted"`
}

// MyPlanRow is one row of GET /plans/my.
type MyPlanRow struct {
	PlanID      int64  `json:"planId"`
	StartDate   string `json:"startDate,omitempty"`
	Title       string `json:"title"`
	IsPublic    bool   `json:"isPublic"`
	IsCompleted bool   `json:"isCompleted"`
}

func (r MyPlanRow) ToDomain() domain.PlanRow {
	row := domain.PlanRow{PlanID: r.PlanID, Title: r.Title, IsPublic: r.IsPublic, IsCompleted: r.IsCompleted}
	if t, ok := parseTripDate(r.StartDate); ok {
		row.StartDate = &t
	}
	return row
}

// PlanDetailResponse is the body of GET /plans/{id}/detail.
type PlanDetailResponse struct {
	PlanID      int64       `json:"planId"`
	Title       string      `json:"title"`
	IsPublic    bool        `json:"isPublic"`
	IsCompleted bool        `json:"isCompleted"`
	Days        []DetailDay `json:"days"`
}

type DetailDay struct {
	DayID    int64          `json:"dayId"`
	TripDate string         `json:"tripDate"`
	Items    []ItemResponse `json:"items"`
}

func (r PlanDetailResponse) ToDomain() domain.PlanDetail {
	d := domain.PlanDetail{
		PlanID:      r.PlanID,
		Title:       r.Title,
		IsPublic:    r.IsPublic,
		IsCompleted: r.IsCompleted,
		Days:        make([]domain.DayDetail, 0, len(r.Days)),
	}
	for _, day := range r.Days {
		date, _ := parseTripDate(day.TripDate)
		d.Days = append(d.Days, domain.DayDetail{
			DayID:    day.DayID,
			TripDate: date,
			Items:    ItemsToDomain(day.Items),
		})
	}
	return d
}
