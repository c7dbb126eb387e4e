// Package sched provides the trailing-edge debouncer that coalesces bursts
// of host trigger events into single processing passes.
package sched

import (
	"sync"
	"time"
)

// Debouncer defers a callback until a quiet period has elapsed after the
// most recent trigger. There is no leading-edge call: the first event of a
// burst schedules, it never fires immediately. The host's own state update
// lags the triggering event, so snapshot reads must not happen before the
// window closes.
//
// Two windows are supported: the default one for ambient events and a
// shorter one for explicit user-initiated refreshes.
type Debouncer struct {
	window     time.Duration
	fastWindow time.Duration
	fire       func()

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer invoking fire on its own timer goroutine once a
// window elapses without further triggers.
func New(window, fastWindow time.Duration, fire func()) *Debouncer {
	if fastWindow <= 0 || fastWindow > window {
		fastWindow = window
	}
	return &Debouncer{window: window, fastWindow: fastWindow, fire: fire}
}

// Trigger schedules the callback after the default window, replacing any
// pending schedule.
func (d *Debouncer) Trigger() {
	d.schedule(d.window)
}

// TriggerFast schedules the callback after the fast window, replacing any
// pending schedule. Used for the path following an explicit user action.
func (d *Debouncer) TriggerFast() {
	d.schedule(d.fastWindow)
}

func (d *Debouncer) schedule(window time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(window, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fire()
	})
}

// Cancel drops any pending schedule. Safe to call when nothing is pending.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a schedule is outstanding.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
