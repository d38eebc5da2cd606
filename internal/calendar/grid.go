// Package calendar builds the month grid consumed by presentation layers:
// full weeks of days with per-day holiday names and covering requests.
package calendar

import (
	"time"

	"github.com/starford/gestorplan/internal/dateutil"
	"github.com/starford/gestorplan/internal/holiday"
	"github.com/starford/gestorplan/internal/models"
)

// Day is one cell of the month grid.
type Day struct {
	Date     string           `json:"date"`
	InMonth  bool             `json:"inMonth"`
	Today    bool             `json:"today"`
	Holiday  string           `json:"holiday,omitempty"`
	Requests []models.Request `json:"requests"`
}

// Grid returns the ordered day sequence for the given month, expanded
// outward to complete weeks for the given first-day-of-week convention.
// The result length is always a multiple of 7 (typically 35 or 42). Each
// day buckets the requests covering it, preserving collection order, and
// carries its fixed-holiday name when one exists. today marks the Today
// flag; pass the zero time to leave it unset.
func Grid(year int, month time.Month, weekStart time.Weekday, requests []models.Request, today time.Time) []Day {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := startOfWeek(monthStart, weekStart)
	gridEnd := startOfWeek(monthEnd, weekStart).AddDate(0, 0, 6)

	var days []Day
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		cell := Day{
			Date:     dateutil.FormatDay(d),
			InMonth:  d.Month() == month,
			Today:    !today.IsZero() && dateutil.SameDay(d, today),
			Requests: []models.Request{},
		}
		if name, ok := holiday.Lookup(d); ok {
			cell.Holiday = name
		}
		for _, r := range requests {
			if dateutil.ContainsDay(r.StartDate, r.EndDate, d) {
				cell.Requests = append(cell.Requests, r)
			}
		}
		days = append(days, cell)
	}
	return days
}

// startOfWeek rewinds t to the most recent weekStart day (possibly t itself).
func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return t.AddDate(0, 0, -offset)
}
