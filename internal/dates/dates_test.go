package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelative(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"today", 0, true},
		{"just now", 0, true},
		{"yesterday", 1, true},
		{"3 days ago", 3, true},
		{"3 days", 3, true},
		{"30+ days ago", 30, true},
		{"2 weeks ago", 14, true},
		{"about 5 hours ago", 0, true},
		{"less than 2 days", 1, true},
		{"less than 1 day ago", 0, true},
		{"2 months ago", 60, true},
		{"Posted 4 Days Ago", 4, true},
		{"gibberish", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseRelative(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseAbsolute(t *testing.T) {
	observed := time.Date(2025, 12, 24, 9, 30, 0, 0, time.UTC)

	posted, daysAgo, ok := ParseAbsolute("2025-12-22", observed)
	require.True(t, ok)
	assert.Equal(t, "2025-12-22", posted)
	assert.Equal(t, 2, daysAgo)

	posted, daysAgo, ok = ParseAbsolute("Tue, December 23, 2025", observed)
	require.True(t, ok)
	assert.Equal(t, "2025-12-23", posted)
	assert.Equal(t, 1, daysAgo)

	_, _, ok = ParseAbsolute("not a date", observed)
	assert.False(t, ok)
}

func TestParseAbsoluteFutureDateStaysNegative(t *testing.T) {
	observed := time.Date(2025, 12, 24, 9, 30, 0, 0, time.UTC)

	_, daysAgo, ok := ParseAbsolute("2025-12-26", observed)
	require.True(t, ok)
	assert.Equal(t, -2, daysAgo)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 12, 23, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, 12, 24, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(from, to))
}

func TestDateDaysAgo(t *testing.T) {
	observed := time.Date(2025, 12, 24, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-17", DateDaysAgo(7, observed))
}
