// Package watch reprocesses source texts when they change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one changed source file, named relative to the
// watched directory.
type Handler func(ctx context.Context, filename string) error

// Config holds configuration for a Watcher.
type Config struct {
	Dir string
	// Accept reports whether a filename should be handled. Nil accepts all.
	Accept func(filename string) bool
	// Debounce collapses bursts of events for the same file.
	Debounce time.Duration
	Handler  Handler
}

// Watcher invokes a handler for created or written files in a directory.
type Watcher struct {
	dir      string
	accept   func(string) bool
	debounce time.Duration
	handler  Handler

	mu      sync.Mutex
	pending map[string]*pendingRun
	wg      sync.WaitGroup
}

// pendingRun is a debounced handler call not yet started.
type pendingRun struct {
	timer *time.Timer
}

// New creates a Watcher.
func New(cfg Config) *Watcher {
	accept := cfg.Accept
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &Watcher{
		dir:      cfg.Dir,
		accept:   accept,
		debounce: cfg.Debounce,
		handler:  cfg.Handler,
		pending:  make(map[string]*pendingRun),
	}
}

// Run watches until ctx is cancelled. Handler errors are logged and do
// not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	slog.Info("watching source directory", "dir", w.dir, "debounce", w.debounce)

	defer w.wait()

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.accept(name) {
				slog.Debug("ignoring change", "file", name, "op", event.Op.String())
				continue
			}
			w.schedule(ctx, name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if run, ok := w.pending[name]; ok && run.timer.Stop() {
		run.timer.Reset(w.debounce)
		return
	}

	run := &pendingRun{}
	w.wg.Add(1)
	run.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.pending[name] == run {
			delete(w.pending, name)
		}
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}

		slog.Info("source changed", "file", name)
		if err := w.handler(ctx, name); err != nil {
			slog.Error("failed to process changed file", "file", name, "error", err)
		}
	})
	w.pending[name] = run
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, run := range w.pending {
		if run.timer.Stop() {
			w.wg.Done()
		}
		delete(w.pending, name)
	}
}

func (w *Watcher) wait() {
	w.wg.Wait()
}
