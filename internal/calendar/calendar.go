package calendar

import (
	"math"
	"sort"
	"time"

	"github.com/username/watson-stat/pkg/dateutil"
	"go.uber.org/zap"
)

// Targets holds the working-hour target per weekday, Monday=0 ... Sunday=6
type Targets [7]float64

// DefaultTargets is 8h Monday to Friday and nothing on weekends
var DefaultTargets = Targets{8, 8, 8, 8, 8, 0, 0}

// Seconds returns the target for date in whole seconds, rounded half away from zero
func (t Targets) Seconds(date time.Time) int64 {
	return int64(math.Round(t[dateutil.WeekdayIndex(date)] * 3600))
}

// Calendar maps ISO date keys to the day buckets of an evaluation range
type Calendar struct {
	days map[string]*Day
}

// Build creates one day per calendar date from start up to but excluding end.
// The first day is always created, so end <= start yields a calendar holding
// only start.
func Build(start, end time.Time, targets Targets, logger *zap.Logger) *Calendar {
	if logger == nil {
		logger = zap.NewNop()
	}

	cal := &Calendar{days: make(map[string]*Day)}
	end = dateutil.StartOfDay(end)

	current := dateutil.StartOfDay(start)
	for {
		cal.days[dateutil.Key(current)] = NewDay(current, targets, logger)
		current = dateutil.AddDays(current, 1)
		if !current.Before(end) {
			break
		}
	}

	logger.Debug("Calendar built",
		zap.String("start", dateutil.Key(start)),
		zap.String("end", dateutil.Key(end)),
		zap.Int("days", len(cal.days)))

	return cal
}

// Day returns the bucket for an ISO date key
func (c *Calendar) Day(key string) (*Day, bool) {
	day, ok := c.days[key]
	return day, ok
}

// DayFor returns the bucket covering date
func (c *Calendar) DayFor(date time.Time) (*Day, bool) {
	return c.Day(dateutil.Key(date))
}

// Len returns the number of days in the calendar
func (c *Calendar) Len() int {
	return len(c.days)
}

// Days returns every bucket sorted by ascending date
func (c *Calendar) Days() []*Day {
	days := make([]*Day, 0, len(c.days))
	for _, day := range c.days {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date().Before(days[j].Date())
	})
	return days
}

// Balance sums the balance of every day in the calendar
func (c *Calendar) Balance() int64 {
	var total int64
	for _, day := range c.days {
		total += day.Balance()
	}
	return total
}
