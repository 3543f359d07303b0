package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime returns nil for NULL, empty, or unparseable values.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
