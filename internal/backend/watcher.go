package backend

import (
	"context"
	"sync"
	"time"

	"navtrail/internal/nav"
)

// Event conveys an observed editor context change or a poll error. Each
// successful event is one external trigger for the debounced pipeline; the
// full navigation snapshot is not read here.
type Event struct {
	Context nav.Context
	Err     error
}

// Watcher polls the editor's cheap context signal at a fixed interval and
// publishes an event whenever it moves. Errors are published too so the UI
// can surface degraded connectivity.
type Watcher struct {
	source   nav.Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher polling the source every interval.
func NewWatcher(source nav.Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of observed context changes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(w.interval / 2)
	var last nav.Context
	var lastErr bool
	seen := false

	emit := func() bool {
		throttle.wait()
		current, err := w.source.Context()
		if err != nil {
			if lastErr {
				return true
			}
			lastErr = true
			return w.send(Event{Err: err})
		}
		lastErr = false
		if seen && current == last {
			return true
		}
		last = current
		seen = true
		return w.send(Event{Context: current})
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
