package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{" 2025-01-10 ", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{"2025-03-31T23:30:00-03:00", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), true},
		{"2025-02-30", time.Time{}, false},
		{"31/03/2025", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.True(t, tt.want.Equal(got), "%q: got %s", tt.raw, got)
	}
}
