package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen is the longest title the backend accepts for plans and items.
const MaxTitleLen = 200

// Plan is the header record of a trip. ID is zero until the backend assigns one.
type Plan struct {
	ID          int64
	Title       string
	IsPublic    bool
	IsCompleted bool
}

// Saved reports whether the backend has assigned an ID.
func (p *Plan) Saved() bool {
	return p.ID > 0
}

// Validate checks the fields the backend rejects before any request is made.
func (p *Plan) Validate() error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "plan title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return &ValidationError{Field: "title", Message: "plan title must be at most 200 characters"}
	}
	return nil
}

// PlanRow is one entry of the signed-in member's plan list.
// StartDate is the earliest day of the plan, nil when it has no days.
type PlanRow struct {
	PlanID      int64
	StartDate   *time.Time
	Title       string
	IsPublic    bool
	IsCompleted bool
}

// Status classifies the row relative to today.
func (r PlanRow) Status(today time.Time) PlanRowStatus {
	if r.IsCompleted {
		return PlanCompleted
	}
	if r.StartDate != nil && r.StartDate.Before(truncateDay(today)) {
		return PlanExpired
	}
	return PlanUpcoming
}

// PlanDetail is the read-only view of a plan with every day and its items.
type PlanDetail struct {
	PlanID      int64
	Title       string
	IsPublic    bool
	IsCompleted bool
	Days        []DayDetail
}

// DayDetail is one day of a PlanDetail.
type DayDetail struct {
	DayID    int64
	TripDate time.Time
	Items    []Item
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
