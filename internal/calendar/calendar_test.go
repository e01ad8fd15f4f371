package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/watson-stat/pkg/dateutil"
	"go.uber.org/zap"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantDays int
	}{
		{"one week", dateutil.Date(2025, 1, 13), dateutil.Date(2025, 1, 20), 7},
		{"single day", dateutil.Date(2025, 1, 13), dateutil.Date(2025, 1, 14), 1},
		{"across month end", dateutil.Date(2025, 1, 30), dateutil.Date(2025, 2, 2), 3},
		{"leap february", dateutil.Date(2024, 2, 1), dateutil.Date(2024, 3, 1), 29},
		{"whole year", dateutil.Date(2025, 1, 1), dateutil.Date(2026, 1, 1), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := Build(tt.start, tt.end, DefaultTargets, zap.NewNop())

			assert.Equal(t, tt.wantDays, cal.Len())

			_, hasEnd := cal.DayFor(tt.end)
			assert.False(t, hasEnd, "end date must be excluded")

			days := cal.Days()
			require.Len(t, days, tt.wantDays)
			for i, day := range days {
				assert.Equal(t, dateutil.Key(dateutil.AddDays(tt.start, i)), dateutil.Key(day.Date()))
			}
		})
	}
}

func TestBuildEndNotAfterStart(t *testing.T) {
	start := dateutil.Date(2025, 1, 15)

	tests := []struct {
		name string
		end  time.Time
	}{
		{"end equals start", start},
		{"end before start", dateutil.Date(2025, 1, 10)},
		{"end far before start", dateutil.Date(2000, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := Build(start, tt.end, DefaultTargets, zap.NewNop())

			require.Equal(t, 1, cal.Len())
			day, ok := cal.Day("2025-01-15")
			require.True(t, ok)
			assert.True(t, day.Date().Equal(start))
		})
	}
}

func TestBuildIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	start := time.Date(2025, 1, 13, 23, 0, 0, 0, loc)
	end := time.Date(2025, 1, 15, 1, 0, 0, 0, loc)

	cal := Build(start, end, DefaultTargets, nil)

	assert.Equal(t, 2, cal.Len())
	_, ok := cal.Day("2025-01-13")
	assert.True(t, ok)
	_, ok = cal.Day("2025-01-14")
	assert.True(t, ok)
}

func TestTargetsSeconds(t *testing.T) {
	targets := Targets{8, 7.5, 1.0 / 3600, 0.1, 0.00001, 0, 24}
	monday := dateutil.Date(2025, 1, 13)

	want := []int64{28800, 27000, 1, 360, 0, 0, 86400}
	for i, w := range want {
		date := dateutil.AddDays(monday, i)
		assert.Equal(t, w, targets.Seconds(date), date.Weekday().String())
	}
}

func TestCalendarBalance(t *testing.T) {
	cal := Build(dateutil.Date(2025, 1, 13), dateutil.Date(2025, 1, 20), DefaultTargets, nil)

	assert.Equal(t, int64(-5*28800), cal.Balance())

	var sum int64
	for _, day := range cal.Days() {
		sum += day.Balance()
	}
	assert.Equal(t, sum, cal.Balance())
}
