package timeclock

import (
	"strconv"
	"strings"
)

const (
	DefaultDailyHours       = 8
	DefaultToleranceMinutes = 10

	MinDailyHours    = 1
	MaxDailyHours    = 12
	MaxToleranceMins = 30
)

func DefaultSchedule() Schedule {
	breakStart, breakEnd := "12:00", "13:00"
	return Schedule{
		WeekdayIn:        "08:00",
		WeekdayOut:       "18:00",
		BreakStart:       &breakStart,
		BreakEnd:         &breakEnd,
		DailyHours:       DefaultDailyHours,
		ToleranceMinutes: DefaultToleranceMinutes,
	}
}

// ValidClock reports whether value is HH:MM or HH:MM:SS on a 24h clock.
func ValidClock(value string) bool {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	limits := []int{23, 59, 59}
	for i, part := range parts {
		if len(part) != 2 {
			return false
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return false
		}
	}
	return true
}

// NormalizeClock pads HH:MM to HH:MM:SS.
func NormalizeClock(value string) string {
	value = strings.TrimSpace(value)
	if strings.Count(value, ":") == 1 {
		return value + ":00"
	}
	return value
}

// clockMinutes converts HH:MM[:SS] into minutes since midnight. Seconds are
// ignored.
func clockMinutes(value string) (int, bool) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}
