// Package dateutil implements the calendar-day interval arithmetic used by
// the reminder engine and the calendar grid.
//
// All request dates travel as date-only ISO strings (YYYY-MM-DD). Helpers
// parse them at UTC midnight so comparisons are calendar comparisons, never
// timezone-boundary surprises.
package dateutil

import (
	"fmt"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
)

// Layout is the interchange format for request dates.
const Layout = "2006-01-02"

// ParseDay parses a strict YYYY-MM-DD string into a UTC midnight instant.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: parse %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders t as a YYYY-MM-DD string.
func FormatDay(t time.Time) string {
	return t.Format(Layout)
}

// EndOfDay extends t to the last instant of its calendar day, so a request
// ending on day D still covers all of D regardless of the time-of-day
// carried by the probe instant.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ContainsDay reports whether day falls within [start, EndOfDay(end)]
// inclusive. Malformed dates (possible on best-effort imported rows) simply
// yield false; containment is never an error.
func ContainsDay(start, end string, day time.Time) bool {
	s, err := ParseDay(start)
	if err != nil {
		return false
	}
	e, err := ParseDay(end)
	if err != nil {
		return false
	}
	e = EndOfDay(e)
	return !day.Before(s) && !day.After(e)
}

// SameDay reports whether a and b denote the same calendar day. The reminder
// engine calls this with a precomputed "tomorrow" reference; it is an
// equality test, not an ordering.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ValidateRange checks that start and end are parseable dates and that end
// is not chronologically before start. Violations are user-facing
// validation errors.
func ValidateRange(start, end string) error {
	s, err := ParseDay(start)
	if err != nil {
		return fmt.Errorf("%w: start date %q is not a valid YYYY-MM-DD date", apperr.ErrValidation, start)
	}
	e, err := ParseDay(end)
	if err != nil {
		return fmt.Errorf("%w: end date %q is not a valid YYYY-MM-DD date", apperr.ErrValidation, end)
	}
	if e.Before(s) {
		return fmt.Errorf("%w: end date %s is before start date %s", apperr.ErrValidation, end, start)
	}
	return nil
}
