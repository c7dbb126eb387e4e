package engine

import (
	"navtrail/internal/nav"
	"navtrail/internal/symbol"
)

// Stack tracks one navigation path: the raw stack as last seen from the host
// and the persisted display history that survives backtracking.
type Stack struct {
	ID   int
	Name string
	Root nav.Location

	// Items mirrors the host stack as of the last ingest.
	Items []nav.Event
	// Display is the persisted history. Its length can exceed CurrentIndex:
	// entries beyond the live position stay visible after a pure backtrack.
	Display []nav.Event

	// CurrentIndex is the 0-based live position; 0 means at the root,
	// before the first recorded jump.
	CurrentIndex int
	// MaxDepth is the deepest position reached on the tracked path.
	MaxDepth int
	// AtRoot marks a stack whose live position has returned to the root.
	AtRoot bool
}

// DisplayAt returns the persisted event at the given 1-based position.
func (s *Stack) DisplayAt(pos int) (nav.Event, bool) {
	if pos < 1 || pos > len(s.Display) {
		return nav.Event{}, false
	}
	return s.Display[pos-1], true
}

// Reset empties the stack in place. Identity, name, and root location are
// kept so the stack retains its slot in the rotation order.
func (s *Stack) Reset() {
	s.Items = nil
	s.Display = nil
	s.CurrentIndex = 0
	s.MaxDepth = 0
	s.AtRoot = true
}

// Collection holds the named stacks in creation order together with the
// active selection. Rotation walks the explicit order slice, never the map.
type Collection struct {
	stacks   map[int]*Stack
	order    []int
	activeID int
}

// NewCollection returns an empty stack collection.
func NewCollection() *Collection {
	return &Collection{stacks: make(map[int]*Stack)}
}

// Len returns the number of stacks.
func (c *Collection) Len() int {
	return len(c.order)
}

// Active returns the active stack, or nil when the collection is empty.
func (c *Collection) Active() *Stack {
	if c.activeID == 0 {
		return nil
	}
	return c.stacks[c.activeID]
}

// ActiveID returns the active stack id, or 0 when the collection is empty.
func (c *Collection) ActiveID() int {
	return c.activeID
}

// Put inserts a stack at the end of the rotation order and makes it active.
func (c *Collection) Put(s *Stack) {
	if _, ok := c.stacks[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.stacks[s.ID] = s
	c.activeID = s.ID
}

// Switch rotates the active selection by delta positions through the ordered
// id list, wrapping cyclically. It reports whether the selection moved; with
// one stack or fewer it is a no-op.
func (c *Collection) Switch(delta int) bool {
	if len(c.order) <= 1 {
		return false
	}
	at := -1
	for i, id := range c.order {
		if id == c.activeID {
			at = i
			break
		}
	}
	if at < 0 {
		c.activeID = c.order[0]
		return true
	}
	n := len(c.order)
	at = ((at+delta)%n + n) % n
	c.activeID = c.order[at]
	return true
}

// Ordered returns the stacks in creation order.
func (c *Collection) Ordered() []*Stack {
	out := make([]*Stack, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.stacks[id])
	}
	return out
}

// nameForRoot derives a stack display name from its root location.
func nameForRoot(root nav.Location) string {
	if name := symbol.ModuleName(root.File); name != "" {
		return name
	}
	return "(unnamed)"
}
