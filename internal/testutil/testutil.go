// Package testutil provides shared test helpers for setting up caches and services.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/starford/gestorplan/internal/cache"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/scheduling"
	"github.com/starford/gestorplan/internal/store"
)

// TestCache creates a temporary SQLite cache that is automatically cleaned up.
func TestCache(t *testing.T) *cache.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "gestorplan-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := cache.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService builds a scheduling service over an in-memory store and a
// temporary cache, seeded with the given records. Reminders stay disabled so
// tests control scans explicitly.
func TestService(t *testing.T, seed ...models.Request) *scheduling.Service {
	t.Helper()
	db := TestCache(t)
	mem := store.NewMemory()
	mem.Seed(seed)

	svc := scheduling.NewService(mem, db, nil, nil, nil, false)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

// Req is a terse request literal for tests.
func Req(id, name string, area models.Area, kind models.RequestType, start, end string) models.Request {
	return models.Request{
		ID:        id,
		Name:      name,
		Area:      area,
		Type:      kind,
		StartDate: start,
		EndDate:   end,
	}
}
