package shared

import (
	"time"

	"brecho/internal/platform/calendar"
)

const minYear = 1900

// Date parses a calendar date (YYYY-MM-DD or RFC3339, kept at UTC midnight)
// and records an issue when raw is empty or malformed.
func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, ok := calendar.Parse(raw)
	if !ok {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

// Period checks the mes/ano pair used by monthly summaries.
func (v *Validator) Period(month, year int) {
	if month < 1 || month > 12 {
		v.Add("mes", "must be between 1 and 12")
	}
	if year < minYear {
		v.Add("ano", "must be a valid year")
	}
}
