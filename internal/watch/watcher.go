// Package watch rebuilds scripts when their source files change.
//
// The parent directory of every source is watched rather than the file
// itself, since many editors save by writing a new file and renaming it over
// the old one. Events are coalesced for a short delay and the affected
// scripts are then updated one at a time, in registry order, on the event
// loop goroutine.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/manager"
	"github.com/Norgate-AV/scriptbin/internal/script"
)

// DefaultDelay is how long events are coalesced before a rebuild
const DefaultDelay = 250 * time.Millisecond

// Updater brings a script up to date
type Updater interface {
	Update(entry script.Entry, force bool) (manager.Outcome, error)
}

// Watcher drives an Updater from file system events
type Watcher struct {
	updater Updater
	logger  zerolog.Logger
	delay   time.Duration
	report  func(manager.Result)
}

// Option configures a Watcher
type Option func(*Watcher)

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDelay sets the coalescing delay
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.delay = d
	}
}

// WithReporter calls fn with the result of every successful rebuild check
func WithReporter(fn func(manager.Result)) Option {
	return func(w *Watcher) {
		w.report = fn
	}
}

// New creates a watcher
func New(updater Updater, opts ...Option) *Watcher {
	w := &Watcher{
		updater: updater,
		logger:  zerolog.Nop(),
		delay:   DefaultDelay,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Watch blocks until ctx is cancelled, updating entries whose source changes.
// Failed updates are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, entries []script.Entry) error {
	if len(entries) == 0 {
		return errs.New(errs.NotFound, "no scripts to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrapf(err, "failed to create file watcher")
	}
	defer fw.Close()

	tracked := make(map[string]int, len(entries))
	dirs := make(map[string]bool)

	for i, entry := range entries {
		path, err := filepath.Abs(entry.Path)
		if err != nil {
			return errs.Wrapf(err, "watch %s", entry.Name)
		}

		if _, ok := tracked[path]; !ok {
			tracked[path] = i
		}

		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}

		if err := fw.Add(dir); err != nil {
			return errs.Wrapf(err, "watch %s: unable to watch %s", entry.Name, dir)
		}

		dirs[dir] = true
		w.logger.Debug().Str("dir", dir).Msg("watching directory")
	}

	pending := make(map[int]bool)
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			i, ok := tracked[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("source changed")

			pending[i] = true
			timer.Reset(w.delay)

		case <-timer.C:
			w.flush(entries, pending)
			pending = make(map[int]bool)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// flush updates the pending entries in registry order
func (w *Watcher) flush(entries []script.Entry, pending map[int]bool) {
	for i, entry := range entries {
		if !pending[i] {
			continue
		}

		outcome, err := w.updater.Update(entry, false)
		if err != nil {
			w.logger.Error().Err(err).Str("script", entry.Name).Msg("rebuild failed")
			continue
		}

		if w.report != nil {
			w.report(manager.Result{Name: entry.Name, Outcome: outcome})
		}
	}
}
