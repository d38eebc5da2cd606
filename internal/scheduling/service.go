// Package scheduling implements the session service: it exclusively owns the
// in-memory request collection and coordinates the record store, the local
// cache, the reminder engine, and the SSE broker. All other components are
// reached through it; there are no package-level singletons.
package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/cache"
	"github.com/starford/gestorplan/internal/calendar"
	"github.com/starford/gestorplan/internal/codec"
	"github.com/starford/gestorplan/internal/dateutil"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/reminder"
	"github.com/starford/gestorplan/internal/sse"
	"github.com/starford/gestorplan/internal/store"
)

// cacheWarning is surfaced when the local cache cannot be written; the
// session keeps running on in-memory state.
const cacheWarning = "No se pudo guardar la copia local. Descarga un respaldo manual para asegurar tus datos."

// Asker is the AI collaborator capability the service consumes.
type Asker interface {
	Ask(ctx context.Context, requests []models.Request, question string) (string, error)
}

// Service owns the session's request collection.
//
// The original design is single-session and event-driven; the collection
// mutex below only guards against concurrent HTTP handlers touching the
// slice, not against multi-session conflicts (out of scope).
type Service struct {
	store     store.Provider
	cache     *cache.DB
	engine    *reminder.Engine
	broker    *sse.Broker
	ai        Asker
	reminders bool
	now       func() time.Time

	mu      sync.RWMutex
	records []models.Request
}

// NewService wires the session service. broker and ai may be nil (headless
// runs, tests). remindersEnabled stands in for the original's notification
// permission: when false, scans are skipped entirely.
func NewService(st store.Provider, db *cache.DB, engine *reminder.Engine, broker *sse.Broker, ai Asker, remindersEnabled bool) *Service {
	return &Service{
		store:     st,
		cache:     db,
		engine:    engine,
		broker:    broker,
		ai:        ai,
		reminders: remindersEnabled,
		now:       time.Now,
	}
}

// SetClock injects a fixed clock for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Load populates the collection from the remote store, falling back to the
// local cache when the store is unreachable. It then refreshes the cache and
// runs a reminder scan.
func (s *Service) Load(ctx context.Context) error {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		slog.Warn("record store unavailable, using cached collection", slog.String("error", err.Error()))
		records, err = s.cache.Requests()
		if err != nil {
			return fmt.Errorf("load collection: %w", err)
		}
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.persist()
	s.Scan()
	return nil
}

// List returns a copy of the collection in session order.
func (s *Service) List() []models.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Request, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Service) Get(id string) (models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Request{}, fmt.Errorf("%w: request %s", apperr.ErrNotFound, id)
}

// Create validates the submission, persists it to the store (which assigns
// the id), and appends it to the collection. Validation failures abort
// before the store is reached.
func (s *Service) Create(ctx context.Context, r models.Request) (models.Request, error) {
	r.ID = ""
	if err := r.Validate(); err != nil {
		return models.Request{}, err
	}
	id, err := s.store.Create(ctx, r)
	if err != nil {
		return models.Request{}, err
	}
	r.ID = id

	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()

	s.afterChange()
	if s.broker != nil {
		s.broker.PublishRecordEvent("created", id)
	}
	return r, nil
}

// Update fully replaces all fields of the record with the given id; the id
// itself is never reassigned.
func (s *Service) Update(ctx context.Context, id string, r models.Request) (models.Request, error) {
	r.ID = id
	if err := r.Validate(); err != nil {
		return models.Request{}, err
	}
	if _, err := s.Get(id); err != nil {
		return models.Request{}, err
	}
	if err := s.store.Update(ctx, id, r); err != nil {
		return models.Request{}, err
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = r
			break
		}
	}
	s.mu.Unlock()

	s.afterChange()
	if s.broker != nil {
		s.broker.PublishRecordEvent("updated", id)
	}
	return r, nil
}

// Delete removes the record with the given id from the store and the
// collection.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.afterChange()
	if s.broker != nil {
		s.broker.PublishRecordEvent("deleted", id)
	}
	return nil
}

// Clear drops the session collection, the cached copy, and the reminder
// sent-log. The remote store is deliberately untouched: the cache is a
// mirror, not the source of truth.
func (s *Service) Clear() {
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()

	if err := s.cache.SaveRequests(nil); err != nil {
		s.warn(err)
	}
	if err := s.cache.ClearSentLog(); err != nil {
		s.warn(err)
	}
	if s.broker != nil {
		s.broker.PublishCollectionReplaced(0)
	}
}

// Import decodes the payload and, when confirm is set, replaces the entire
// collection with the decoded rows. Without confirm it is a dry run: the
// detected row count is returned and nothing changes. A payload yielding
// zero valid rows never mutates state.
func (s *Service) Import(_ context.Context, filename, content string, confirm bool) (int, error) {
	rows, err := codec.Import(filename, content)
	if err != nil {
		return 0, err
	}
	if !confirm {
		return len(rows), nil
	}

	s.mu.Lock()
	s.records = rows
	s.mu.Unlock()

	s.afterChange()
	if s.broker != nil {
		s.broker.PublishCollectionReplaced(len(rows))
	}
	return len(rows), nil
}

// ExportJSON renders the canonical backup with its date-stamped filename.
func (s *Service) ExportJSON() ([]byte, string, error) {
	data, err := codec.EncodeJSON(s.List())
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("RESPALDO-CALENDARIO-%s.json", s.todayStamp()), nil
}

// ExportCSV renders the spreadsheet report with its date-stamped filename.
func (s *Service) ExportCSV() ([]byte, string) {
	return codec.EncodeCSV(s.List()), fmt.Sprintf("REPORTE-GESTION-%s.csv", s.todayStamp())
}

// ExportICS renders the iCalendar feed with its date-stamped filename.
func (s *Service) ExportICS() ([]byte, string) {
	return codec.EncodeICS(s.List()), fmt.Sprintf("CALENDARIO-%s.ics", s.todayStamp())
}

// Month builds the calendar grid for the given month over the current
// collection.
func (s *Service) Month(year int, month time.Month, weekStart time.Weekday) []calendar.Day {
	return calendar.Grid(year, month, weekStart, s.List(), s.now())
}

// Ask forwards the question to the AI collaborator with the current
// collection as context. Record state is never affected.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if s.ai == nil {
		return "", fmt.Errorf("%w: assistant not configured", apperr.ErrAssistant)
	}
	return s.ai.Ask(ctx, s.List(), question)
}

// Scan runs one reminder pass over the collection, honoring the delivery
// gate. Sent-log persistence problems are warnings, not failures.
func (s *Service) Scan() {
	if !s.reminders || s.engine == nil {
		return
	}
	if _, err := s.engine.Scan(s.List()); err != nil {
		s.warn(err)
	}
}

// afterChange persists the collection and re-runs the reminder scan. It is
// invoked once per completed mutation.
func (s *Service) afterChange() {
	s.persist()
	s.Scan()
}

func (s *Service) persist() {
	if err := s.cache.SaveRequests(s.List()); err != nil {
		s.warn(err)
	}
}

// warn surfaces a local-persistence problem to the user without aborting
// the session.
func (s *Service) warn(err error) {
	slog.Warn(cacheWarning, slog.String("error", err.Error()))
	if s.broker != nil {
		s.broker.Publish(sse.Event{Type: "warning", Data: map[string]string{"message": cacheWarning}})
	}
}

func (s *Service) todayStamp() string {
	return dateutil.FormatDay(s.now())
}
