package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
// Editors and copy tools write in several chunks.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports supported documents that appear or change in a directory.
// Subdirectories are not watched.
type Watcher struct {
	dir      string
	debounce time.Duration
	loader   *Loader

	mu      sync.Mutex
	timers  map[string]*time.Timer
	closed  bool
	pending sync.WaitGroup
}

// NewWatcher creates a watcher for dir. A debounce <= 0 uses DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      ResolvePath(dir),
		debounce: debounce,
		loader:   NewLoader(),
		timers:   make(map[string]*time.Timer),
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching. The channel is closed after ctx is cancelled and
// all pending notifications have drained.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.CandidateFile, error) {
	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	out := make(chan domain.CandidateFile)
	go w.loop(ctx, fsw, out)
	logger.Info("watching %s", w.dir)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan domain.CandidateFile) {
	defer func() {
		w.shutdown()
		close(out)
		fsw.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.handleEvent(event) {
				w.schedule(ctx, event.Name, out)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.dir, err)
		}
	}
}

// handleEvent reports whether event should lead to a notification.
// Removals cancel any pending notification for the path.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if isHidden(name) || !domain.IsSupportedFile(name) {
		return false
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.cancel(event.Name)
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

func (w *Watcher) schedule(ctx context.Context, path string, out chan<- domain.CandidateFile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if t, ok := w.timers[path]; ok && t.Stop() {
		t.Reset(w.debounce)
		return
	}

	w.pending.Add(1)
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		w.fire(ctx, path, out)
	})
}

func (w *Watcher) fire(ctx context.Context, path string, out chan<- domain.CandidateFile) {
	c, err := w.loader.Load(path)
	if err != nil {
		logger.Debug("watch: skipping %s: %v", path, err)
		return
	}
	logger.Debug("watch: %s settled", c.Name)
	select {
	case out <- *c:
	case <-ctx.Done():
	}
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		if t.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
}

// shutdown stops all timers and waits for running callbacks.
func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.closed = true
	for path, t := range w.timers {
		if t.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()

	w.pending.Wait()
}
