package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"navtrail/internal/logging"
	"navtrail/internal/logging/events"
	"navtrail/internal/nav"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		events.App.Stop()
		return tea.Quit
	case "tab":
		m.manager.SwitchNext()
		m.viewportOffset = 0
		return nil
	case "shift+tab":
		m.manager.SwitchPrev()
		m.viewportOffset = 0
		return nil
	case "n":
		m.manager.CreateStack(nav.Location{File: m.lastCtx.File, Line: m.lastCtx.Line})
		return nil
	case "c":
		return m.clearActive()
	case "r":
		m.debouncer.TriggerFast()
		events.Engine.Debounce(true)
		return nil
	case "R":
		return m.openRenameForm()
	case "/":
		return m.openFilterForm()
	case "up", "k":
		m.scrollBy(-1)
		return nil
	case "down", "j":
		m.scrollBy(1)
		return nil
	case "pgup":
		m.scrollBy(-m.panelHeight())
		return nil
	case "pgdown":
		m.scrollBy(m.panelHeight())
		return nil
	}
	if len(key.Runes) == 1 && key.Runes[0] >= '0' && key.Runes[0] <= '9' {
		return m.jumpTo(int(key.Runes[0] - '0'))
	}
	return nil
}

// jumpTo repositions the host editor at the given stack depth (0 is the
// root). The resulting movement comes back through the watcher; the fast
// debounce path keeps the panel from lagging behind it.
func (m *Model) jumpTo(depth int) tea.Cmd {
	if m.manager.Active() == nil {
		return nil
	}
	if err := m.source.Jump(depth); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	events.Panel.Jump(depth)
	m.debouncer.TriggerFast()
	return nil
}

// clearActive resets the active stack, empties the host-owned stack, and
// drops any pending debounce so a stale scheduled pass cannot resurrect the
// discarded history.
func (m *Model) clearActive() tea.Cmd {
	m.debouncer.Cancel()
	m.manager.Clear()
	m.viewportOffset = 0
	if err := m.source.ClearStack(); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
	return nil
}

func (m *Model) openRenameForm() tea.Cmd {
	active := m.manager.Active()
	if active == nil {
		return nil
	}
	m.mode = ModeRename
	m.renameInput.SetValue(active.Name)
	m.renameInput.CursorEnd()
	events.Panel.RenamePrompt(active.ID)
	return m.renameInput.Focus()
}

func (m *Model) openFilterForm() tea.Cmd {
	m.mode = ModeFilter
	return m.filterInput.Focus()
}

func (m *Model) handleRenameForm(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	active := m.manager.Active()
	switch key.String() {
	case "esc", "ctrl+c":
		m.closeRenameForm()
		if active != nil {
			events.Panel.CancelRename(active.ID, events.PanelReasonEscape)
		}
		return true, nil
	case "enter":
		name := m.renameInput.Value()
		m.closeRenameForm()
		if name == "" {
			if active != nil {
				events.Panel.CancelRename(active.ID, events.PanelReasonEmpty)
			}
			return true, nil
		}
		m.manager.Rename(name)
		if active != nil {
			events.Panel.SubmitRename(active.ID, name)
		}
		return true, nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return true, cmd
}

func (m *Model) closeRenameForm() {
	m.mode = ModePanel
	m.renameInput.Blur()
	m.renameInput.SetValue("")
}

func (m *Model) handleFilterForm(msg tea.Msg) (bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch key.String() {
	case "esc", "ctrl+c":
		m.mode = ModePanel
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		events.Panel.FilterCleared()
		return true, nil
	case "enter":
		// Keep the query applied; return key focus to the panel.
		m.mode = ModePanel
		m.filterInput.Blur()
		return true, nil
	}
	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if value := m.filterInput.Value(); value != before {
		events.Panel.Filter(value, m.filterMatches)
	}
	return true, cmd
}

func (m *Model) scrollBy(delta int) {
	m.viewportOffset += delta
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}
