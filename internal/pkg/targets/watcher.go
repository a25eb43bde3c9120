package targets

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tegorov/flipt/internal/pkg/logger"
)

// ReloadDebounce coalesces the burst of events an editor save produces
const ReloadDebounce = 100 * time.Millisecond

// Watch reloads the targets file at path whenever it is written or replaced
// and passes the result to onReload. onReload runs on the watcher goroutine.
// Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onReload func(*Targets, error)) error {
	expanded, err := expandHome(path)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("failed to resolve targets path %q: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create targets watcher: %w", err)
	}

	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself
	dir := filepath.Dir(abs)
	if err := fsWatcher.Add(dir); err != nil {
		if cerr := fsWatcher.Close(); cerr != nil {
			logger.Error("failed to close fsnotify watcher", "error", cerr)
		}
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logger.Debug("watching targets file", "path", abs)
	go watchLoop(ctx, fsWatcher, abs, onReload)
	return nil
}

func watchLoop(ctx context.Context, fsWatcher *fsnotify.Watcher, path string, onReload func(*Targets, error)) {
	defer func() {
		if err := fsWatcher.Close(); err != nil {
			logger.Error("failed to close fsnotify watcher", "error", err)
		}
	}()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(ReloadDebounce)
			} else {
				timer.Reset(ReloadDebounce)
			}
			pending = timer.C

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("targets watcher error", "path", path, "error", err)

		case <-pending:
			pending = nil
			t, err := Load(path)
			if err != nil {
				logger.Warn("failed to reload targets file", "path", path, "error", err)
			} else {
				logger.Info("reloaded targets file", "path", path, "namespaces", len(t.Namespaces))
			}
			onReload(t, err)
		}
	}
}
