// Package watch records summaries that an external agent drops into a
// directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/imishinist/agent-metrics/internal/parser"
)

// ErrSkipFile marks a handler error that only concerns the file at hand, such
// as an unparseable summary. Any other handler error stops Run.
var ErrSkipFile = errors.New("skipping file")

// HandlerFunc processes one settled summary file.
type HandlerFunc func(ctx context.Context, path string) error

// Watcher calls a handler once per summary file after writes to it have been
// quiet for the debounce interval. Handlers run sequentially on the Run
// goroutine.
type Watcher struct {
	dir      string
	debounce time.Duration
	handle   HandlerFunc
	ignore   map[string]struct{}
	log      logrus.FieldLogger
	watcher  *fsnotify.Watcher
}

// New watches dir. Paths in ignore, typically the sinks the handler writes
// to, never reach the handler even when they live inside dir.
func New(log logrus.FieldLogger, dir string, debounce time.Duration, handle HandlerFunc, ignore ...string) (*Watcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch directory: %w", err)
	}

	ignored := make(map[string]struct{}, len(ignore))
	for _, p := range ignore {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ignored path %s: %w", p, err)
		}
		ignored[abs] = struct{}{}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.Add(absDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", absDir, err)
	}

	return &Watcher{
		dir:      absDir,
		debounce: debounce,
		handle:   handle,
		ignore:   ignored,
		log:      log.WithField("component", "watcher"),
		watcher:  w,
	}, nil
}

// Run blocks until ctx is cancelled, the underlying watcher fails, or the
// handler returns an error not wrapping ErrSkipFile.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timers := make(map[string]*time.Timer)
	ready := make(chan string, 16)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	w.log.WithField("dir", w.dir).Info("watching for execution summaries")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, skip := w.ignore[path]; skip {
				continue
			}
			if !parser.Supported(path) {
				continue
			}

			// A timer that already fired has queued the path; a later write
			// starts a fresh one.
			if t, exists := timers[path]; exists && t.Stop() {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(timers, path)
			log := w.log.WithField("file", path)
			if err := w.handle(ctx, path); err != nil {
				if !errors.Is(err, ErrSkipFile) {
					return fmt.Errorf("failed to record %s: %w", path, err)
				}
				log.WithError(err).Warn("skipping summary")
				continue
			}
			log.Debug("summary recorded")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher error: %w", err)
		}
	}
}
