package backend

import (
	"errors"
	"testing"
	"time"

	"navtrail/internal/nav"
	"navtrail/internal/testutil"
)

func recvEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed unexpectedly")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for watcher event")
		return Event{}
	}
}

func TestWatcherEmitsInitialContext(t *testing.T) {
	src := testutil.NewSource()
	src.SetContext(nav.Context{File: "/src/lib/server.ex", Line: 3, Tick: 1})

	w := NewWatcher(src, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := recvEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("unexpected error event: %v", evt.Err)
	}
	if evt.Context.File != "/src/lib/server.ex" || evt.Context.Tick != 1 {
		t.Fatalf("unexpected context: %+v", evt.Context)
	}
}

func TestWatcherDedupsUnchangedContext(t *testing.T) {
	src := testutil.NewSource()
	src.SetContext(nav.Context{File: "/src/lib/server.ex", Line: 3, Tick: 1})

	w := NewWatcher(src, 5*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	recvEvent(t, w)

	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event for unchanged context, got %+v", evt)
	case <-time.After(60 * time.Millisecond):
	}

	src.SetContext(nav.Context{File: "/src/lib/server.ex", Line: 3, Tick: 2})
	evt := recvEvent(t, w)
	if evt.Context.Tick != 2 {
		t.Fatalf("expected changed context to emit, got %+v", evt.Context)
	}
}

func TestWatcherDedupsConsecutiveErrors(t *testing.T) {
	src := testutil.NewSource()
	src.SetContextErr(errors.New("connection refused"))

	w := NewWatcher(src, 5*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := recvEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected error event")
	}

	select {
	case evt := <-w.Events():
		t.Fatalf("expected repeated errors suppressed, got %+v", evt)
	case <-time.After(60 * time.Millisecond):
	}

	// Recovery publishes the context and re-arms error reporting.
	src.SetContextErr(nil)
	src.SetContext(nav.Context{File: "/src/lib/user.ex", Line: 1, Tick: 5})
	evt = recvEvent(t, w)
	if evt.Err != nil || evt.Context.File != "/src/lib/user.ex" {
		t.Fatalf("expected recovery event, got %+v", evt)
	}

	src.SetContextErr(errors.New("connection refused"))
	evt = recvEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected fresh error after recovery")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	src := testutil.NewSource()
	src.SetContext(nav.Context{File: "/src/lib/server.ex", Line: 1, Tick: 1})

	w := NewWatcher(src, 5*time.Millisecond)
	recvEvent(t, w)

	w.Stop()
	w.Wait()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel did not close after Stop")
		}
	}
}
