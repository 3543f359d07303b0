// Package clock converts between wall-clock strings and minutes since
// midnight, and renders the time ranges shown next to schedule items.
//
// Every function is total: malformed input degrades to zero or an empty
// string rather than an error, so rendering never aborts on bad data.
package clock

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in one wall-clock day.
const MinutesPerDay = 24 * 60

// EmDash marks a missing end time in a range.
const EmDash = "—"

// Markers are the labels placed before a 12-hour display time.
var (
	MarkerAM = "오전"
	MarkerPM = "오후"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?::(\d{1,2})(?:\.\d+)?)?$`)

var offsetPattern = regexp.MustCompile(`^[+-]?(?:([01]?\d|2[0-3]):[0-5]\d|24:00)$`)

// ParseMinutes converts "HH:MM", "±HH:MM" or "HH:MM:SS" into signed minutes.
// Seconds are ignored. Empty input and non-numeric parts count as zero.
func ParseMinutes(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	h := atoiOrZero(parts[0])
	m := 0
	if len(parts) > 1 {
		m = atoiOrZero(parts[1])
	}
	return sign * (h*60 + m)
}

// FormatForEditing normalises a clock value to zero-padded "HH:MM".
// It returns "" for empty or unparseable input.
func FormatForEditing(value string) string {
	h, m, ok := parseClock(value)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatForDisplay renders a clock value in 12-hour form with a meridiem
// marker, e.g. "오후 1:05". It returns "" for empty or unparseable input.
func FormatForDisplay(value string) string {
	h, m, ok := parseClock(value)
	if !ok {
		return ""
	}
	marker := MarkerAM
	if h >= 12 {
		marker = MarkerPM
	}
	dh := h
	switch {
	case h == 0:
		dh = 12
	case h > 12:
		dh = h - 12
	}
	return fmt.Sprintf("%s %d:%02d", marker, dh, m)
}

// FromMinutes renders minutes since midnight as "HH:MM". Values outside a
// single day wrap around.
func FromMinutes(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateOffset checks a shift offset such as "01:00", "-00:30" or "+24:00".
func ValidateOffset(value string) error {
	if !offsetPattern.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("offset %q must be HH:MM, optionally signed (e.g. 01:00, -00:30)", value)
	}
	return nil
}

func parseClock(value string) (h, m int, ok bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, 0, false
	}
	match := clockPattern.FindStringSubmatch(s)
	if match == nil {
		slog.Warn("could not format time", "value", value)
		return 0, 0, false
	}
	h, _ = strconv.Atoi(match[1])
	m, _ = strconv.Atoi(match[2])
	if h > 23 || m > 59 {
		slog.Warn("could not format time", "value", value)
		return 0, 0, false
	}
	return h, m, true
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
