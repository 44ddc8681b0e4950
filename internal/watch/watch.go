// Package watch rebuilds when a scene file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/automdl/internal/logger"
)

// DefaultDebounce is how long writes must settle before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Run calls fn each time the file at path is written, once writes have been
// quiet for debounce. It watches the parent directory so editors that save
// by renaming a temp file over the original are noticed. fn runs on the
// watching goroutine, so rebuilds never overlap. Errors from fn are logged.
// Run returns when ctx is done.
func Run(ctx context.Context, path string, debounce time.Duration, fn func(context.Context) error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching for changes", zap.String("path", target))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			logger.Debug("change detected", zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := fn(ctx); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
			}
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
