package contract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/taebin/travelsay/internal/domain"
)

// parseTripDate reads a backend date. Timestamps such as
// "2025-07-01T00:00:00" are cut to their date part. Anything else that is
// not YYYY-MM-DD is logged and reported as missing.
func parseTripDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) > len(domain.DateLayout) && s[len(domain.DateLayout)] == 'T' {
		s = s[:len(domain.DateLayout)]
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		slog.Warn("could not parse trip date", "value", s, "error", err)
		return time.Time{}, false
	}
	return t, true
}
