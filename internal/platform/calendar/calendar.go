// Package calendar handles the date-only values exchanged on the wire.
package calendar

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Parse accepts YYYY-MM-DD or RFC3339 and keeps only the calendar date, at
// UTC midnight.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return Day(t), true
	}
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day drops the clock and the zone, keeping the date as written.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
