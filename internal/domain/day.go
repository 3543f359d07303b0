package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used for trip days.
const DateLayout = "2006-01-02"

// Day is one calendar date inside a plan.
type Day struct {
	ID       int64
	TripDate time.Time
}

// Label returns the day's date as YYYY-MM-DD.
func (d Day) Label() string {
	return FormatDate(d.TripDate)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "date", Message: "a date is required"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", s)}
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
