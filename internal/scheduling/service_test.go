package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/gestorplan/internal/apperr"
	"github.com/starford/gestorplan/internal/models"
	"github.com/starford/gestorplan/internal/testutil"
)

func submission() models.Request {
	return models.Request{
		Name:      "Juan Pérez",
		Area:      models.AreaGraficos,
		Type:      models.TypeVacaciones,
		StartDate: "2024-12-20",
		EndDate:   "2024-12-31",
	}
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, submission())
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created record should carry a store-assigned id")
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != created {
		t.Errorf("Get = %+v, want %+v", got, created)
	}
}

func TestCreate_ValidationAbortsBeforeStore(t *testing.T) {
	svc := testutil.TestService(t)

	bad := submission()
	bad.StartDate, bad.EndDate = "2024-12-31", "2024-12-20"
	_, err := svc.Create(context.Background(), bad)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if got := svc.List(); len(got) != 0 {
		t.Errorf("failed create should leave the collection empty, got %d", len(got))
	}
}

func TestCreate_IgnoresClientID(t *testing.T) {
	svc := testutil.TestService(t)

	r := submission()
	r.ID = "client-chosen"
	created, err := svc.Create(context.Background(), r)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "client-chosen" {
		t.Error("client-supplied id should be discarded")
	}
}

func TestUpdate_ReplacesFieldsKeepsID(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, submission())
	if err != nil {
		t.Fatal(err)
	}

	changed := created
	changed.Name = "Juan P. Gómez"
	changed.EndDate = "2025-01-03"
	updated, err := svc.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on update: %q -> %q", created.ID, updated.ID)
	}
	got, _ := svc.Get(created.ID)
	if got.Name != "Juan P. Gómez" || got.EndDate != "2025-01-03" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestUpdate_MissingRecord(t *testing.T) {
	svc := testutil.TestService(t)
	_, err := svc.Update(context.Background(), "ghost", submission())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, submission())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleted record should be gone, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("double delete should be ErrNotFound, got %v", err)
	}
}

func TestImport_DryRunThenConfirm(t *testing.T) {
	svc := testutil.TestService(t,
		testutil.Req("old-1", "Ana", models.AreaPR, models.TypeCompensatorio, "2025-03-01", "2025-03-01"))
	ctx := context.Background()

	backup := `[{"id":"b1","name":"Juan","area":"COPYS","type":"VACACIONES","startDate":"2025-02-01","endDate":"2025-02-05"}]`

	detected, err := svc.Import(ctx, "backup.json", backup, false)
	if err != nil {
		t.Fatal(err)
	}
	if detected != 1 {
		t.Errorf("dry run detected %d, want 1", detected)
	}
	if got := svc.List(); len(got) != 1 || got[0].ID != "old-1" {
		t.Fatalf("dry run must not mutate the collection: %+v", got)
	}

	if _, err := svc.Import(ctx, "backup.json", backup, true); err != nil {
		t.Fatal(err)
	}
	got := svc.List()
	if len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("confirmed import should replace wholesale: %+v", got)
	}
}

func TestImport_ZeroRowsNeverMutates(t *testing.T) {
	svc := testutil.TestService(t,
		testutil.Req("old-1", "Ana", models.AreaPR, models.TypeCompensatorio, "2025-03-01", "2025-03-01"))

	_, err := svc.Import(context.Background(), "empty.json", "[]", true)
	if !errors.Is(err, apperr.ErrImportFormat) {
		t.Fatalf("error = %v, want ErrImportFormat", err)
	}
	if got := svc.List(); len(got) != 1 {
		t.Errorf("failed import must not touch the collection: %+v", got)
	}
}

func TestClear_LeavesStoreUntouched(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, submission())
	if err != nil {
		t.Fatal(err)
	}

	svc.Clear()
	if got := svc.List(); len(got) != 0 {
		t.Fatalf("clear should empty the session collection: %+v", got)
	}

	// The store still holds the record: a fresh load sees it again.
	if err := svc.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(created.ID); err != nil {
		t.Errorf("record should survive in the store across a clear: %v", err)
	}
}

func TestExportFilenames(t *testing.T) {
	svc := testutil.TestService(t)
	svc.SetClock(func() time.Time {
		return time.Date(2024, 12, 19, 10, 0, 0, 0, time.UTC)
	})

	_, name, err := svc.ExportJSON()
	if err != nil {
		t.Fatal(err)
	}
	if name != "RESPALDO-CALENDARIO-2024-12-19.json" {
		t.Errorf("json filename = %q", name)
	}
	if _, name = svc.ExportCSV(); name != "REPORTE-GESTION-2024-12-19.csv" {
		t.Errorf("csv filename = %q", name)
	}
	if _, name = svc.ExportICS(); name != "CALENDARIO-2024-12-19.ics" {
		t.Errorf("ics filename = %q", name)
	}
}

func TestMonth_UsesCollection(t *testing.T) {
	svc := testutil.TestService(t,
		testutil.Req("r1", "Juan", models.AreaCopys, models.TypeVacaciones, "2024-12-20", "2024-12-31"))

	days := svc.Month(2024, time.December, time.Sunday)
	if len(days)%7 != 0 {
		t.Fatalf("grid length %d not a multiple of 7", len(days))
	}
	found := false
	for _, d := range days {
		if d.Date == "2024-12-25" && len(d.Requests) == 1 {
			found = true
		}
	}
	if !found {
		t.Error("Dec 25 should bucket the covering request")
	}
}

func TestAsk_NotConfigured(t *testing.T) {
	svc := testutil.TestService(t)
	_, err := svc.Ask(context.Background(), "¿quién está de vacaciones?")
	if !errors.Is(err, apperr.ErrAssistant) {
		t.Errorf("error = %v, want ErrAssistant", err)
	}
}
