// Copyright (c) 2026 Inkshelf. All rights reserved.

/*
Package debounce provides a timer-based coalescing policy around a callback.

Each call to [Debouncer.Trigger] cancels any pending invocation and schedules
a new one after the configured quiet period. The wrapped callback therefore
fires once per burst of triggers instead of once per trigger.

It is used to coalesce rapid successive writes (e.g. dashboard widget layout
updates) into a single persistence call.
*/
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays callback execution until a quiet period has elapsed
// since the most recent trigger.
//
// # Concurrency
//
// All methods are safe for concurrent use. The callback runs on a timer
// goroutine and must synchronize its own state.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// New constructs a Debouncer that invokes fn after delay of inactivity.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules the callback, cancelling any previously pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Flush runs a pending callback immediately, if any, and cancels its timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()

	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil

	// Release the lock before invoking the callback so that a callback which
	// triggers the debouncer again cannot deadlock.
	d.mu.Unlock()

	if pending {
		d.fn()
	}
}

// Stop cancels any pending callback without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
