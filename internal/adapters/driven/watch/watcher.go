// Package watch reports changes to a manifest file using fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still seen. Bursts of events are coalesced with a token
// bucket: the first change is reported at once and further changes within
// the interval collapse into a single trailing report.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher is an fsnotify-based file watcher.
type Watcher struct {
	minInterval time.Duration
}

// New creates a watcher that reports at most one change per minInterval.
// A non-positive interval reports every change.
func New(minInterval time.Duration) *Watcher {
	return &Watcher{minInterval: minInterval}
}

// Watch blocks until ctx is cancelled, the watcher fails, or onChange
// returns an error. Cancellation is not an error.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func() error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Debug("watching %s", target)

	limit := rate.Inf
	if w.minInterval > 0 {
		limit = rate.Every(w.minInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if !relevant(event, target) {
				continue
			}
			logger.Debug("%s: %s", event.Op, event.Name)
			if fire == nil {
				timer = time.NewTimer(limiter.Reserve().Delay())
				fire = timer.C
			}

		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				return err
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			return fmt.Errorf("watching %s: %w", target, err)
		}
	}
}

// relevant reports whether event changes the contents at target.
func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
