package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
)

// Memory is an in-process Provider used when no remote store is configured,
// and by tests. Records survive only for the process lifetime; the SQLite
// cache supplies durability across restarts in that mode.
type Memory struct {
	mu      sync.Mutex
	records []models.Request
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Seed replaces the store contents, keeping existing ids. Used on startup to
// warm the store from the local cache.
func (m *Memory) Seed(records []models.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]models.Request(nil), records...)
}

// Create implements Provider.
func (m *Memory) Create(_ context.Context, r models.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	m.records = append(m.records, r)
	return r.ID, nil
}

// ListAll implements Provider.
func (m *Memory) ListAll(_ context.Context) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Request(nil), m.records...), nil
}

// Update implements Provider.
func (m *Memory) Update(_ context.Context, id string, r models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			r.ID = id
			m.records[i] = r
			return nil
		}
	}
	return fmt.Errorf("%w: %w: record %s", apperr.ErrStore, apperr.ErrNotFound, id)
}

// Delete implements Provider.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %w: record %s", apperr.ErrStore, apperr.ErrNotFound, id)
}

// Verify Memory satisfies Provider at compile time.
var _ Provider = (*Memory)(nil)
