package calendar

import (
	"strings"
	"time"

	"github.com/username/watson-stat/internal/frames"
	"github.com/username/watson-stat/pkg/dateutil"
	"github.com/username/watson-stat/pkg/durationfmt"
	"go.uber.org/zap"
)

// Day is the bucket of unique records for one calendar date
type Day struct {
	date    time.Time
	target  int64
	records []frames.Record
	seen    map[frames.RecordKey]struct{}
	logger  *zap.Logger
}

// NewDay creates an empty bucket for date with its weekday target
func NewDay(date time.Time, targets Targets, logger *zap.Logger) *Day {
	if logger == nil {
		logger = zap.NewNop()
	}
	date = dateutil.StartOfDay(date)
	return &Day{
		date:   date,
		target: targets.Seconds(date),
		seen:   make(map[frames.RecordKey]struct{}),
		logger: logger,
	}
}

// Date returns the calendar date of the bucket
func (d *Day) Date() time.Time {
	return d.date
}

// Target returns the target working time in seconds
func (d *Day) Target() int64 {
	return d.target
}

// AddEntry decodes a raw entry and adds it to the bucket.
// Entries of the wrong length are skipped without error.
func (d *Day) AddEntry(entry frames.Entry) error {
	record, _, ok, err := frames.Decode(entry)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	d.Add(record)
	return nil
}

// Add inserts record unless an identical one is already present.
// Negative durations are reported but still counted.
func (d *Day) Add(record frames.Record) bool {
	if record.Duration < 0 {
		d.logger.Warn("Negative time recorded for entry",
			zap.String("identifier", record.Identifier),
			zap.Int64("seconds", record.Duration))
	}

	key := record.Key()
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}

	record.Tags = append([]string(nil), record.Tags...)
	d.records = append(d.records, record)
	return true
}

// Records returns the unique records in insertion order
func (d *Day) Records() []frames.Record {
	return append([]frames.Record(nil), d.records...)
}

// Worked returns the summed duration of all records in seconds
func (d *Day) Worked() int64 {
	var total int64
	for _, r := range d.records {
		total += r.Duration
	}
	return total
}

// Balance returns worked time minus target time in seconds
func (d *Day) Balance() int64 {
	return d.Worked() - d.target
}

// Projects returns the distinct projects in first-seen order
func (d *Day) Projects() []string {
	var projects []string
	seen := make(map[string]bool)
	for _, r := range d.records {
		if !seen[r.Project] {
			seen[r.Project] = true
			projects = append(projects, r.Project)
		}
	}
	return projects
}

// Tags returns the distinct tags across all records in first-seen order
func (d *Day) Tags() []string {
	var tags []string
	seen := make(map[string]bool)
	for _, r := range d.records {
		for _, tag := range r.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// Identifiers returns the identifier of every record in insertion order
func (d *Day) Identifiers() []string {
	ids := make([]string, 0, len(d.records))
	for _, r := range d.records {
		ids = append(ids, r.Identifier)
	}
	return ids
}

// String renders the summary row:
// weekday, date, balance, projects, tags, identifiers
func (d *Day) String() string {
	return strings.Join([]string{
		strings.ToUpper(d.date.Weekday().String()),
		dateutil.Key(d.date),
		durationfmt.Format(d.Balance()),
		strings.Join(d.Projects(), " "),
		strings.Join(d.Tags(), " "),
		strings.Join(d.Identifiers(), " "),
	}, ", ")
}
