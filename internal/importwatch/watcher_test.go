package importwatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/gestorplan/internal/testutil"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return cond()
}

func TestWatch_ImportsDroppedBackup(t *testing.T) {
	svc := testutil.TestService(t)
	inbox := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, svc, inbox, slog.Default())
	}()

	// Let the watcher register before dropping the file.
	time.Sleep(100 * time.Millisecond)

	backup := `[{"id":"b1","name":"Juan","area":"COPYS","type":"VACACIONES","startDate":"2025-02-01","endDate":"2025-02-05"}]`
	path := filepath.Join(inbox, "backup.json")
	if err := os.WriteFile(path, []byte(backup), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return len(svc.List()) == 1 }) {
		t.Fatal("dropped backup was never imported")
	}
	if !waitFor(t, 3*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(inbox, "processed", "backup.json"))
		return err == nil
	}) {
		t.Error("imported file should move to processed/")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestWatch_MovesBadFilesToFailed(t *testing.T) {
	svc := testutil.TestService(t)
	inbox := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, svc, inbox, slog.Default())
	}()

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inbox, "garbage.json")
	if err := os.WriteFile(path, []byte("{not an array"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(inbox, "failed", "garbage.json"))
		return err == nil
	}) {
		t.Error("unparseable file should move to failed/")
	}
	if len(svc.List()) != 0 {
		t.Errorf("failed import must not mutate the collection")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestWatch_IgnoresOtherExtensions(t *testing.T) {
	if importable("notes.txt") || importable("x.json.tmp") {
		t.Error("only .json/.csv files are importable")
	}
	if !importable("backup.JSON") || !importable("report.csv") {
		t.Error("json/csv files should be importable regardless of case")
	}
}
