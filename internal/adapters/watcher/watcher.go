package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default quiet window before a batch is delivered.
const DefaultDebounceWindow = 100 * time.Millisecond

// skipDirectories are never watched.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	".hg":          true,
	"node_modules": true,
}

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	debouncer *Debouncer
	ignore    func(path string) bool

	mu      sync.Mutex
	closed  bool
	batches chan []ports.WatchEvent
}

// NewWatcher creates a new file system watcher that settles events for window.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		ignore:    func(string) bool { return false },
		batches:   make(chan []ports.WatchEvent, 1),
	}
	w.debouncer = NewDebouncer(window, w.deliver)
	return w, nil
}

// Start begins watching root recursively.
func (w *Watcher) Start(ctx context.Context, root string, ignore func(path string) bool) error {
	if ignore != nil {
		w.ignore = ignore
	}

	for dir := range w.directories(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}

// Batches yields settled batches of changes until the watcher stops.
func (w *Watcher) Batches() iter.Seq[[]ports.WatchEvent] {
	return func(yield func([]ports.WatchEvent) bool) {
		for batch := range w.batches {
			if !yield(batch) {
				return
			}
		}
	}
}

// deliver hands a batch to the consumer. While the consumer is still busy
// with the previous batch the events are queued again and retried after the
// next quiet window.
func (w *Watcher) deliver(batch []ports.WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.batches <- batch:
	default:
		for _, event := range batch {
			w.debouncer.Add(event)
		}
	}
}

func (w *Watcher) close() {
	w.debouncer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.batches)
	}
}

// directories walks the tree below root and yields every watched directory.
func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip directories that cannot be read.
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && (skipDirectories[d.Name()] || w.ignore(path)) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
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
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error: " + err.Error())
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	watchEvent, ok := convertEvent(event)
	if !ok || w.ignore(event.Name) {
		return
	}
	w.debouncer.Add(watchEvent)

	if watchEvent.Operation != ports.OpCreate {
		return
	}
	// Watch directories created after Start.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
		for dir := range w.directories(event.Name) {
			_ = w.fsWatcher.Add(dir)
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
