package engine

import (
	"navtrail/internal/logging/events"
	"navtrail/internal/nav"
)

// Manager owns the stack collection and applies observed host snapshots to
// it. All methods are called from the UI event loop; the Manager itself does
// no locking and spawns no goroutines.
type Manager struct {
	col     *Collection
	nextID  int
	version uint64
}

// NewManager returns a Manager with an empty collection.
func NewManager() *Manager {
	return &Manager{col: NewCollection(), nextID: 1}
}

// Version increments on every mutation. Render caches key off it instead of
// deep-comparing stack contents.
func (m *Manager) Version() uint64 {
	return m.version
}

func (m *Manager) bump() {
	m.version++
}

// Stacks returns the stacks in creation order.
func (m *Manager) Stacks() []*Stack {
	return m.col.Ordered()
}

// Active returns the active stack, or nil when none exists.
func (m *Manager) Active() *Stack {
	return m.col.Active()
}

// ActiveID returns the active stack id, or 0 when none exists.
func (m *Manager) ActiveID() int {
	return m.col.ActiveID()
}

// HasHistory reports whether any stack has persisted display items. The
// panel's auto-show policy keys off this.
func (m *Manager) HasHistory() bool {
	for _, s := range m.col.Ordered() {
		if len(s.Display) > 0 {
			return true
		}
	}
	return false
}

// CreateStack allocates a new stack rooted at the given location, makes it
// active, and returns its id. A root without a file is a silent no-op (id 0):
// the next qualifying event retries creation.
func (m *Manager) CreateStack(root nav.Location) int {
	if root.File == "" {
		return 0
	}
	s := &Stack{
		ID:     m.nextID,
		Name:   nameForRoot(root),
		Root:   root,
		AtRoot: true,
	}
	m.nextID++
	m.col.Put(s)
	m.bump()
	events.Stack.Create(s.ID, s.Name, root.File)
	return s.ID
}

// Ingest applies one observed snapshot to the active stack, creating one
// from the current editor context when none exists. The snapshot's 1-based
// index is normalized to 0-based here.
func (m *Manager) Ingest(snap nav.Snapshot, ctx nav.Context) {
	active := m.col.Active()
	if active == nil {
		// Populated on the next ingest.
		m.CreateStack(nav.Location{File: ctx.File, Line: ctx.Line})
		return
	}

	index := snap.CurrentIndex - 1
	if index < 0 {
		index = 0
	}
	if index > len(snap.Items) {
		index = len(snap.Items)
	}

	if index == 0 || len(snap.Items) == 0 {
		active.AtRoot = true
		active.CurrentIndex = 0
		active.Items = append([]nav.Event(nil), snap.Items...)
		m.bump()
		return
	}

	if active.AtRoot {
		if prev, ok := active.DisplayAt(1); ok {
			next := snap.Items[0]
			if next.Tag != prev.Tag || next.Origin.File != prev.Origin.File {
				// Divergence at the first level while sitting at the
				// root starts a fresh path; the old stack stays
				// reachable through rotation.
				events.Stack.Branch(active.ID, prev.Tag, next.Tag)
				m.CreateStack(nav.Location{File: ctx.File, Line: ctx.Line})
				return
			}
		}
		active.AtRoot = false
	}

	resolve(active, snap.Items, index)
	m.bump()
	events.Engine.Ingest(active.ID, index, len(active.Display))
}

// SwitchNext activates the next stack in creation order, wrapping around.
func (m *Manager) SwitchNext() bool {
	if !m.col.Switch(1) {
		return false
	}
	m.bump()
	events.Stack.Switch(m.col.ActiveID())
	return true
}

// SwitchPrev activates the previous stack in creation order, wrapping around.
func (m *Manager) SwitchPrev() bool {
	if !m.col.Switch(-1) {
		return false
	}
	m.bump()
	events.Stack.Switch(m.col.ActiveID())
	return true
}

// Clear resets the active stack in place: its history empties but its id,
// name, and position in the rotation order survive. The caller is expected
// to also reset the host-owned stack and cancel any pending debounce.
func (m *Manager) Clear() {
	active := m.col.Active()
	if active == nil {
		return
	}
	active.Reset()
	m.bump()
	events.Stack.Clear(active.ID)
}

// Rename sets the active stack's display name. Empty names are ignored.
func (m *Manager) Rename(name string) {
	active := m.col.Active()
	if active == nil || name == "" {
		return
	}
	active.Name = name
	m.bump()
	events.Stack.Rename(active.ID, name)
}
