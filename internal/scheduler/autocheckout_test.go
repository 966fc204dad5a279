package scheduler

import (
	"testing"
	"time"

	"github.com/attendly/backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseWallClock(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		hour   int
		minute int
		second int
	}{
		{"full form", "09:30:15", 9, 30, 15},
		{"short form", "17:45", 17, 45, 0},
		{"midnight", "00:00:00", 0, 0, 0},
		{"end of day", "23:59:59", 23, 59, 59},
		{"garbage falls back", "not-a-time", 17, 0, 0},
		{"empty falls back", "", 17, 0, 0},
		{"out of range hour falls back", "25:00:00", 17, 0, 0},
		{"out of range minute falls back", "10:75", 17, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, s := parseWallClock(tt.in)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
			assert.Equal(t, tt.second, s)
		})
	}
}

func TestCheckoutTime(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)
	endOfDay := "17:00:00"

	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	t.Run("no breaks uses end of day on the check-in date", func(t *testing.T) {
		got := checkoutTime(checkIn, nil, endOfDay)
		assert.Equal(t, at(17, 0), got)
	})

	t.Run("closed last break wins", func(t *testing.T) {
		breaks := []*domain.Break{
			{BreakStart: at(12, 0), BreakEnd: ptr(at(12, 30))},
			{BreakStart: at(15, 0), BreakEnd: ptr(at(15, 20))},
		}
		got := checkoutTime(checkIn, breaks, endOfDay)
		assert.Equal(t, at(15, 20), got)
	})

	t.Run("open last break uses its start", func(t *testing.T) {
		breaks := []*domain.Break{
			{BreakStart: at(14, 45)},
		}
		got := checkoutTime(checkIn, breaks, endOfDay)
		assert.Equal(t, at(14, 45), got)
	})

	t.Run("break before check-in clamps to end of day", func(t *testing.T) {
		breaks := []*domain.Break{
			{BreakStart: at(7, 0), BreakEnd: ptr(at(7, 30))},
		}
		got := checkoutTime(checkIn, breaks, endOfDay)
		assert.Equal(t, at(17, 0), got)
	})

	t.Run("break on another date clamps to end of day", func(t *testing.T) {
		nextDay := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		breaks := []*domain.Break{
			{BreakStart: nextDay, BreakEnd: ptr(nextDay.Add(15 * time.Minute))},
		}
		got := checkoutTime(checkIn, breaks, endOfDay)
		assert.Equal(t, at(17, 0), got)
	})

	t.Run("malformed end of day falls back to 17:00", func(t *testing.T) {
		got := checkoutTime(checkIn, nil, "bogus")
		assert.Equal(t, at(17, 0), got)
	})
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)

	assert.True(t, sameDate(a, b))
	assert.False(t, sameDate(a, c))
}
