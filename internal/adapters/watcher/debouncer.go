// Package watcher reports changes to a build snapshot file.
package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into a single notification.
type Debouncer struct {
	mu       sync.Mutex
	pending  int
	timer    *time.Timer
	window   time.Duration
	callback func(events int)
}

// NewDebouncer creates a debouncer that calls callback with the number of
// coalesced events once window has passed without a new event.
func NewDebouncer(window time.Duration, callback func(events int)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the window.
func (d *Debouncer) Add() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending++
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	n := d.pending
	d.pending = 0
	d.timer = nil
	d.mu.Unlock()

	if n > 0 && d.callback != nil {
		d.callback(n)
	}
}

// Stop discards pending events without calling the callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = 0
}
