package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

// Watcher implements ports.Watcher for a single file using fsnotify.
// The parent directory is watched, so a file replaced by rename is still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	debouncer *Debouncer
	target    string

	mu      sync.Mutex
	closed  bool
	changes chan struct{}
}

// NewWatcher creates a new file watcher.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	w := &Watcher{
		fsWatcher: fsw,
		logger:    logger,
		changes:   make(chan struct{}, 1),
	}
	w.debouncer = NewDebouncer(window, func(int) { w.notify() })
	return w, nil
}

// Start begins watching path.
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.target = abs

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Changes yields once per debounced batch of changes to the watched file.
// The sequence ends when the watcher stops.
func (w *Watcher) Changes() iter.Seq[struct{}] {
	return func(yield func(struct{}) bool) {
		for c := range w.changes {
			if !yield(c) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.debouncer.Add()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", w.target))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// notify signals a change. Pending signals are coalesced.
func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) close() {
	w.debouncer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.closed = true
		close(w.changes)
	}
}
