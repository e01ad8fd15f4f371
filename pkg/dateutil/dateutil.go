package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// ISODate is the layout used for calendar keys and date arguments
const ISODate = "2006-01-02"

// ErrInvalidDate is returned when a date string is not YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date")

// Date returns the calendar date y-m-d as midnight UTC.
// Calendar dates carry no timezone once constructed.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay strips the time of day and the zone, keeping the wall-clock date
func StartOfDay(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), date.Day())
}

// AddDays moves a calendar date by n days
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date).AddDate(0, 0, n)
}

// WeekdayIndex returns the Monday-first weekday index (Monday=0 ... Sunday=6)
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// LocalDate converts an epoch instant in whole seconds to the calendar date
// it falls on in loc.
func LocalDate(epochSeconds int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Unix(epochSeconds, 0).In(loc))
}

// Key formats a calendar date as YYYY-MM-DD
func Key(date time.Time) string {
	return date.Format(ISODate)
}

// ParseDate parses a strict YYYY-MM-DD calendar date
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(ISODate, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, dateStr)
	}
	return t, nil
}

// Today returns today's local date
func Today() time.Time {
	return StartOfDay(time.Now())
}
