package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"navtrail/internal/backend"
	"navtrail/internal/logging/events"
)

func waitForWatcherEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return watcherDoneMsg{}
		}
		return watcherEventMsg{event: evt}
	}
}

func waitForFire(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return debounceFiredMsg{}
	}
}

type watcherEventMsg struct {
	event backend.Event
}

type watcherDoneMsg struct{}

type debounceFiredMsg struct{}

func (m *Model) handleWatcherEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(watcherEventMsg)
	if !ok {
		return nil
	}
	m.applyWatcherEvent(eventMsg.event)
	if m.watcher != nil {
		return waitForWatcherEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleWatcherDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyWatcherEvent treats a poll error as "nothing changed": the stack
// state must not thrash on transient host failures. A successful context
// observation reschedules the debounce window; the snapshot itself is read
// only after it elapses.
func (m *Model) applyWatcherEvent(evt backend.Event) {
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		return
	}
	m.errMsg = ""
	m.lastCtx = evt.Context
	m.debouncer.Trigger()
	events.Engine.Debounce(false)
}

func (m *Model) handleDebounceFiredMsg(tea.Msg) tea.Cmd {
	events.Engine.Fire()
	m.process()
	return waitForFire(m.fireCh)
}

// process is the single debounced pass: read the host snapshot, bail when
// the cheap detector reports no movement, otherwise feed the engine.
func (m *Model) process() {
	snap, err := m.source.Stack()
	if err != nil {
		// Fail closed: a transient read failure is treated as unchanged.
		events.Engine.PollError(err)
		return
	}
	if !m.detector.Poll(snap) {
		events.Engine.Unchanged()
		return
	}
	m.manager.Ingest(snap, m.lastCtx)
}
