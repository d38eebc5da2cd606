package cache

import (
	"os"
	"testing"

	"github.com/starford/gestorplan/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "gestorplan-cache-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRequests_AbsentKeyIsEmpty(t *testing.T) {
	db := testDB(t)
	requests, err := db.Requests()
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 0 {
		t.Errorf("fresh cache should be empty, got %d", len(requests))
	}
}

func TestRequests_RoundTrip(t *testing.T) {
	db := testDB(t)
	in := []models.Request{
		{ID: "r1", Name: "Juan Pérez", Area: models.AreaGraficos, Type: models.TypeVacaciones, StartDate: "2024-12-20", EndDate: "2024-12-31"},
	}
	if err := db.SaveRequests(in); err != nil {
		t.Fatal(err)
	}
	out, err := db.Requests()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	// A save replaces, never merges.
	if err := db.SaveRequests(nil); err != nil {
		t.Fatal(err)
	}
	out, err = db.Requests()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("nil save should clear the collection, got %d", len(out))
	}
}

func TestSentLog_RoundTripAndClear(t *testing.T) {
	db := testDB(t)

	ids, err := db.SentLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("fresh sent-log should be empty, got %v", ids)
	}

	want := []string{"r1-start-2024-12-19", "r1-end-2024-12-30"}
	if err := db.SaveSentLog(want); err != nil {
		t.Fatal(err)
	}
	ids, err = db.SentLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("sent-log = %v, want %v", ids, want)
	}

	if err := db.ClearSentLog(); err != nil {
		t.Fatal(err)
	}
	ids, err = db.SentLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("cleared sent-log should be empty, got %v", ids)
	}
}

func TestSentLogStore_Adapter(t *testing.T) {
	db := testDB(t)
	s := SentLogStore{DB: db}

	if err := s.Save([]string{"k1"}); err != nil {
		t.Fatal(err)
	}
	ids, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "k1" {
		t.Errorf("adapter round trip = %v", ids)
	}
}
