// Package importwatch watches an inbox directory and imports dropped
// backup/report files. A file landing in the inbox counts as the operator's
// confirmation, so the import replaces the collection wholesale; processed
// files are moved aside so the inbox never re-imports them.
package importwatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/gestorplan/internal/scheduling"
)

// settleDelay debounces partially written files: the import runs only after
// a file has been quiet for this long.
const settleDelay = 500 * time.Millisecond

// Watch starts an fsnotify watcher on the inbox directory and processes
// dropped .json/.csv files until ctx is cancelled. Successful imports move
// the file to processed/, failures to failed/.
func Watch(ctx context.Context, svc *scheduling.Service, inbox string, logger *slog.Logger) error {
	for _, dir := range []string{inbox, filepath.Join(inbox, "processed"), filepath.Join(inbox, "failed")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(inbox); err != nil {
		return err
	}

	logger.Info("import watcher: started", slog.String("inbox", inbox))

	pending := make(map[string]*time.Timer)
	readyCh := make(chan string, 16)

	for {
		select {
		case <-ctx.Done():
			for _, t := range pending {
				t.Stop()
			}
			logger.Info("import watcher: stopped")
			return nil

		case path := <-readyCh:
			delete(pending, path)
			process(ctx, svc, inbox, path, logger)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !importable(ev.Name) {
				continue
			}
			path := ev.Name
			if t, scheduled := pending[path]; scheduled {
				t.Reset(settleDelay)
			} else {
				pending[path] = time.AfterFunc(settleDelay, func() {
					select {
					case readyCh <- path:
					case <-ctx.Done():
					}
				})
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("import watcher: error", slog.String("error", werr.Error()))
		}
	}
}

// importable accepts only .json/.csv files directly in the inbox (not the
// processed/failed subdirectories).
func importable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv":
		return true
	}
	return false
}

func process(ctx context.Context, svc *scheduling.Service, inbox, path string, logger *slog.Logger) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("import watcher: read failed", slog.String("file", name), slog.String("error", err.Error()))
		return
	}

	count, err := svc.Import(ctx, name, string(data), true)
	if err != nil {
		logger.Warn("import watcher: import failed", slog.String("file", name), slog.String("error", err.Error()))
		moveTo(inbox, path, "failed", logger)
		return
	}

	logger.Info("import watcher: collection replaced",
		slog.String("file", name),
		slog.Int("records", count))
	moveTo(inbox, path, "processed", logger)
}

func moveTo(inbox, path, bucket string, logger *slog.Logger) {
	dest := filepath.Join(inbox, bucket, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		logger.Warn("import watcher: move failed",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}
}
