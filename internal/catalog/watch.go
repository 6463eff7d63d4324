package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay coalesces the burst of events editors emit on save
const DefaultDebounceDelay = 100 * time.Millisecond

// ReloadFunc receives the reloaded catalog, or the error that prevented
// loading or validating it
type ReloadFunc func(c *Catalog, err error)

// Watcher reloads a catalog file whenever it changes on disk
type Watcher struct {
	path          string
	debounceDelay time.Duration
	watcher       *fsnotify.Watcher

	mu       sync.Mutex
	timer    *time.Timer
	closed   bool
	inflight sync.WaitGroup
}

// NewWatcher watches the directory containing path. Watching the directory
// rather than the file survives editors that save by rename.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:          abs,
		debounceDelay: DefaultDebounceDelay,
		watcher:       fw,
	}, nil
}

// SetDebounceDelay changes the delay between the last event and the reload
func (w *Watcher) SetDebounceDelay(d time.Duration) {
	w.debounceDelay = d
}

// Run delivers reloads to onChange until ctx is cancelled, then closes the
// watcher. onChange is called from a timer goroutine, one call at a time,
// and is never called after Run returns. onChange must not call Close.
func (w *Watcher) Run(ctx context.Context, onChange ReloadFunc) error {
	defer w.Close()

	var callMu sync.Mutex
	reload := func() {
		callMu.Lock()
		defer callMu.Unlock()
		onChange(Load(w.path))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule(reload)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			callMu.Lock()
			onChange(nil, fmt.Errorf("watch %s: %w", w.path, err))
			callMu.Unlock()
		}
	}
}

// schedule restarts the debounce timer. A timer that fires after Close
// does not run fn.
func (w *Watcher) schedule(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, func() {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.inflight.Add(1)
		w.mu.Unlock()
		defer w.inflight.Done()
		fn()
	})
}

// Close stops the watcher, cancels any pending reload and waits for a
// reload already in progress. Closing twice is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.inflight.Wait()
	return w.watcher.Close()
}
