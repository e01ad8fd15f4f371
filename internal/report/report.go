package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/username/watson-stat/internal/calendar"
	"github.com/username/watson-stat/internal/frames"
	"github.com/username/watson-stat/pkg/dateutil"
	"github.com/username/watson-stat/pkg/durationfmt"
	"go.uber.org/zap"
)

// Operation selects the report to produce
type Operation string

const (
	OperationList    Operation = "list"
	OperationBalance Operation = "balance"
)

// ListHeader is the first line of the list report
const ListHeader = "day, date, balance, projects, tags, identifier"

// ErrUnknownOperation is returned for operations other than list and balance
var ErrUnknownOperation = errors.New("unknown operation")

// Operations lists every supported operation
func Operations() []string {
	return []string{string(OperationBalance), string(OperationList)}
}

// ParseOperation validates an operation name
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OperationList, OperationBalance:
		return op, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownOperation, s, Operations())
	}
}

// RouteSummary counts what happened to the entries of one routing pass
type RouteSummary struct {
	Entries    int
	Routed     int
	Skipped    int // wrong element count
	OutOfRange int
}

// Generator routes frame entries into a calendar and renders reports
type Generator struct {
	location *time.Location
	logger   *zap.Logger
}

// NewGenerator creates a generator that assigns entries to days in loc
func NewGenerator(loc *time.Location, logger *zap.Logger) *Generator {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		location: loc,
		logger:   logger,
	}
}

// Route adds every entry to the day its start instant falls on.
// Entries of the wrong length or outside the calendar are dropped silently;
// an entry whose fields do not convert aborts routing.
func (g *Generator) Route(cal *calendar.Calendar, entries []frames.Entry) (RouteSummary, error) {
	summary := RouteSummary{Entries: len(entries)}

	for i, entry := range entries {
		if len(entry) != frames.EntryLength {
			summary.Skipped++
			continue
		}

		start, err := frames.StartSeconds(entry)
		if err != nil {
			return summary, fmt.Errorf("entry %d: %w", i, err)
		}

		day, ok := cal.DayFor(dateutil.LocalDate(start, g.location))
		if !ok {
			summary.OutOfRange++
			continue
		}

		if err := day.AddEntry(entry); err != nil {
			return summary, fmt.Errorf("entry %d: %w", i, err)
		}
		summary.Routed++
	}

	g.logger.Debug("Entries routed",
		zap.Int("entries", summary.Entries),
		zap.Int("routed", summary.Routed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("out_of_range", summary.OutOfRange))

	return summary, nil
}

// Generate routes entries into cal and writes the requested report to w
func (g *Generator) Generate(w io.Writer, op Operation, cal *calendar.Calendar, entries []frames.Entry) error {
	if _, err := ParseOperation(string(op)); err != nil {
		return err
	}

	if _, err := g.Route(cal, entries); err != nil {
		return fmt.Errorf("failed to route entries: %w", err)
	}

	switch op {
	case OperationList:
		return WriteList(w, cal)
	default:
		return WriteBalance(w, cal)
	}
}

// WriteList writes the header and one row per day in ascending date order
func WriteList(w io.Writer, cal *calendar.Calendar) error {
	if _, err := fmt.Fprintln(w, ListHeader); err != nil {
		return err
	}
	for _, day := range cal.Days() {
		if _, err := fmt.Fprintln(w, day.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteBalance writes the aggregate balance of the whole calendar
func WriteBalance(w io.Writer, cal *calendar.Calendar) error {
	_, err := fmt.Fprintf(w, "balance: %s\n", durationfmt.Format(cal.Balance()))
	return err
}
