// Package reminder decides which day-before reminders are due and
// deduplicates deliveries through a persisted sent-log.
package reminder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/gestorplan/internal/dateutil"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/notify"
)

// DefaultRetentionDays bounds the sent-log: entries older than this are
// pruned on save. Same-day deduplication only needs today's entries, so any
// positive retention preserves the guarantee.
const DefaultRetentionDays = 30

// SentLog persists the set of already-delivered reminder identifiers.
type SentLog interface {
	Load() ([]string, error)
	Save(ids []string) error
}

// Engine scans the request collection and delivers due reminders. Apart
// from notifier I/O and the sent-log, a scan is a pure function of
// (records, today, sent set).
type Engine struct {
	log       SentLog
	notifier  notify.Notifier
	retention int
	now       func() time.Time
}

// New creates an Engine. retentionDays <= 0 selects DefaultRetentionDays.
// now may be nil for the wall clock; tests inject a fixed instant.
func New(log SentLog, notifier notify.Notifier, retentionDays int, now func() time.Time) *Engine {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{log: log, notifier: notifier, retention: retentionDays, now: now}
}

// Scan walks the collection once: a request whose start date is tomorrow
// fires a "starts tomorrow" reminder, one whose end date is tomorrow fires
// an "ends tomorrow" reminder, each at most once per calendar day. The two
// checks are independent, so a single-day request starting and ending
// tomorrow fires both. The sent-log is written once at the end, and only
// when something new fired. Returns the number of reminders delivered.
func (e *Engine) Scan(requests []models.Request) (int, error) {
	today := e.now()
	tomorrow := today.AddDate(0, 0, 1)
	todayStr := dateutil.FormatDay(today)

	ids, err := e.log.Load()
	if err != nil {
		return 0, fmt.Errorf("reminder: load sent log: %w", err)
	}
	sent := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		sent[id] = struct{}{}
	}

	delivered := 0
	changed := false
	for _, r := range requests {
		// Malformed dates on imported rows never fire; parse errors are not
		// scan errors.
		if start, perr := dateutil.ParseDay(r.StartDate); perr == nil && dateutil.SameDay(start, tomorrow) {
			key := fmt.Sprintf("%s-start-%s", r.ID, todayStr)
			if _, done := sent[key]; !done {
				e.notifier.Deliver(
					fmt.Sprintf("📅 Mañana inicia: %s", r.Type),
					fmt.Sprintf("Hola %s, recordatorio: tu %s comienza mañana (%s).", r.Name, r.Type, spanishDate(start)),
				)
				sent[key] = struct{}{}
				ids = append(ids, key)
				delivered++
				changed = true
			}
		}
		if end, perr := dateutil.ParseDay(r.EndDate); perr == nil && dateutil.SameDay(end, tomorrow) {
			key := fmt.Sprintf("%s-end-%s", r.ID, todayStr)
			if _, done := sent[key]; !done {
				e.notifier.Deliver(
					fmt.Sprintf("🏁 Mañana finaliza: %s", r.Type),
					fmt.Sprintf("Hola %s, recordatorio: mañana es el último día de tu %s.", r.Name, r.Type),
				)
				sent[key] = struct{}{}
				ids = append(ids, key)
				delivered++
				changed = true
			}
		}
	}

	if !changed {
		// Idempotent no-op: nothing fired, skip the write.
		return 0, nil
	}

	pruned := e.prune(ids, today)
	if err := e.log.Save(pruned); err != nil {
		return delivered, fmt.Errorf("reminder: save sent log: %w", err)
	}
	slog.Debug("reminder scan complete",
		slog.Int("delivered", delivered),
		slog.Int("log_size", len(pruned)))
	return delivered, nil
}

// prune drops sent-log entries whose trailing date component is older than
// the retention window. Entries without a parseable date suffix are kept.
func (e *Engine) prune(ids []string, today time.Time) []string {
	cutoff := today.AddDate(0, 0, -e.retention)
	kept := ids[:0]
	for _, id := range ids {
		// The date suffix is the fixed-width YYYY-MM-DD tail of the key.
		if len(id) >= len(dateutil.Layout) {
			if d, err := dateutil.ParseDay(id[len(id)-len(dateutil.Layout):]); err == nil && d.Before(cutoff) {
				continue
			}
		}
		kept = append(kept, id)
	}
	return kept
}
