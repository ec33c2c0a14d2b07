// Package watcher implements file system watching for watch mode.
package watcher

import (
	"cmp"
	"slices"
	"sync"
	"time"
	"unique"

	"go.trai.ch/sob/internal/core/ports"
)

// Debouncer coalesces rapid file system events into one batch per quiet window.
// Later events for the same path replace earlier ones.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	timer    *time.Timer
	window   time.Duration
	callback func(batch []ports.WatchEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(batch []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the quiet window.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(event.Path)] = event.Operation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the quiet window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	batch := d.takeLocked()
	d.timer = nil
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		d.callback(batch)
	}
}

// Flush immediately delivers all pending events and blocks until the callback returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// The timer already fired; let it deliver the batch.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	batch := d.takeLocked()
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		d.callback(batch)
	}
}

// Stop discards pending events and cancels the timer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

// takeLocked drains the pending set into a batch sorted by path.
// Must be called with d.mu held.
func (d *Debouncer) takeLocked() []ports.WatchEvent {
	if len(d.pending) == 0 {
		return nil
	}

	batch := make([]ports.WatchEvent, 0, len(d.pending))
	for handle, op := range d.pending {
		batch = append(batch, ports.WatchEvent{Path: handle.Value(), Operation: op})
	}
	clear(d.pending)

	slices.SortFunc(batch, func(a, b ports.WatchEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return batch
}
