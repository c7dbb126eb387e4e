package engine

import (
	"testing"

	"navtrail/internal/nav"
)

func loc(file string) nav.Location {
	return nav.Location{File: file, Line: 1}
}

func ctx(file string) nav.Context {
	return nav.Context{File: file, Line: 1}
}

func snap(index int, items ...nav.Event) nav.Snapshot {
	return nav.Snapshot{Items: items, CurrentIndex: index}
}

func TestCreateStackDerivesNameFromRoot(t *testing.T) {
	m := NewManager()
	id := m.CreateStack(loc("lib/user_controller.ex"))
	if id != 1 {
		t.Fatalf("expected first stack id 1, got %d", id)
	}
	active := m.Active()
	if active == nil {
		t.Fatalf("expected active stack")
	}
	if active.Name != "UserController" {
		t.Fatalf("expected name UserController, got %q", active.Name)
	}
	if !active.AtRoot {
		t.Fatalf("expected fresh stack at root")
	}
}

func TestCreateStackWithoutFileIsNoOp(t *testing.T) {
	m := NewManager()
	if id := m.CreateStack(nav.Location{}); id != 0 {
		t.Fatalf("expected no-op id 0, got %d", id)
	}
	if m.Active() != nil {
		t.Fatalf("expected no stack created")
	}
	// Retried on the next qualifying event.
	if id := m.CreateStack(loc("server.ex")); id != 1 {
		t.Fatalf("expected retry to allocate id 1, got %d", id)
	}
}

func TestIngestWithoutActiveStackCreatesOne(t *testing.T) {
	m := NewManager()
	m.Ingest(snap(2, ev("a", "a.ex")), ctx("user_controller.ex"))
	active := m.Active()
	if active == nil {
		t.Fatalf("expected stack created from context")
	}
	if active.Name != "UserController" {
		t.Fatalf("expected UserController, got %q", active.Name)
	}
	if len(active.Display) != 0 {
		t.Fatalf("expected creation pass to defer population, got %v", active.Display)
	}
}

func TestIngestRootDetection(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("user_controller.ex"))
	m.Ingest(snap(2, ev("a", "a.ex")), ctx("a.ex"))

	active := m.Active()
	active.AtRoot = false
	m.Ingest(snap(1, ev("a", "a.ex")), ctx("user_controller.ex"))
	if !active.AtRoot {
		t.Fatalf("expected index 0 to set atRoot")
	}
	if active.CurrentIndex != 0 {
		t.Fatalf("expected currentIndex 0 at root, got %d", active.CurrentIndex)
	}

	active.AtRoot = false
	m.Ingest(snap(0), ctx("user_controller.ex"))
	if !active.AtRoot {
		t.Fatalf("expected empty items to set atRoot")
	}
}

func TestIngestExtendAndBacktrack(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("user_controller.ex"))

	m.Ingest(snap(2, ev("handle_call/3", "server.ex")), ctx("server.ex"))
	active := m.Active()
	assertTags(t, active.Display, "handle_call/3")
	if active.CurrentIndex != 1 || active.MaxDepth != 1 {
		t.Fatalf("expected index/maxDepth 1, got %d/%d", active.CurrentIndex, active.MaxDepth)
	}

	// Backtrack to root: history stays visible.
	m.Ingest(snap(1, ev("handle_call/3", "server.ex")), ctx("user_controller.ex"))
	assertTags(t, active.Display, "handle_call/3")
	if !active.AtRoot || active.CurrentIndex != 0 {
		t.Fatalf("expected root position, got atRoot=%v index=%d", active.AtRoot, active.CurrentIndex)
	}
}

func TestIngestRootLevelDivergenceCreatesNewStack(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("user_controller.ex"))
	m.Ingest(snap(2, ev("handle_call/3", "server.ex")), ctx("server.ex"))
	m.Ingest(snap(1, ev("handle_call/3", "server.ex")), ctx("user_controller.ex"))

	first := m.Active()

	// A different jump from the root is a new root-level path.
	m.Ingest(snap(2, ev("init/1", "server.ex")), ctx("user_controller.ex"))

	second := m.Active()
	if second == first {
		t.Fatalf("expected a fresh active stack")
	}
	if len(m.Stacks()) != 2 {
		t.Fatalf("expected both stacks retained, got %d", len(m.Stacks()))
	}
	// The snapshot that triggered creation is not merged into the new stack.
	if len(second.Display) != 0 {
		t.Fatalf("expected new stack unpopulated, got %v", second.Display)
	}
	// The prior stack keeps its history.
	assertTags(t, first.Display, "handle_call/3")

	// The prior stack is reachable by rotating backwards.
	m.SwitchPrev()
	if m.Active() != first {
		t.Fatalf("expected SwitchPrev to reach the prior stack")
	}
}

func TestIngestMatchingRootJumpReusesStack(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("user_controller.ex"))
	m.Ingest(snap(3, ev("handle_call/3", "server.ex"), ev("init/1", "server.ex")), ctx("server.ex"))
	m.Ingest(snap(1, ev("handle_call/3", "server.ex")), ctx("user_controller.ex"))

	first := m.Active()

	// Re-following the same first-level jump continues the same path.
	m.Ingest(snap(2, ev("handle_call/3", "server.ex")), ctx("server.ex"))

	if m.Active() != first {
		t.Fatalf("expected the same stack to stay active")
	}
	if first.AtRoot {
		t.Fatalf("expected atRoot cleared")
	}
	assertTags(t, first.Display, "handle_call/3", "init/1")
}

func TestSwitchRotationIsOrderedAndCyclic(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("a.ex"))
	m.CreateStack(loc("b.ex"))
	m.CreateStack(loc("c.ex"))

	if m.ActiveID() != 3 {
		t.Fatalf("expected newest stack active, got %d", m.ActiveID())
	}
	m.SwitchNext()
	if m.ActiveID() != 1 {
		t.Fatalf("expected wrap to first stack, got %d", m.ActiveID())
	}
	m.SwitchNext()
	if m.ActiveID() != 2 {
		t.Fatalf("expected second stack, got %d", m.ActiveID())
	}
	m.SwitchPrev()
	m.SwitchPrev()
	if m.ActiveID() != 3 {
		t.Fatalf("expected wrap back to third stack, got %d", m.ActiveID())
	}
}

func TestSwitchSingleStackIsNoOp(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("a.ex"))
	before := m.Version()
	if m.SwitchNext() || m.SwitchPrev() {
		t.Fatalf("expected rotation no-op with one stack")
	}
	if m.Version() != before {
		t.Fatalf("expected version untouched by no-op rotation")
	}
}

func TestClearResetsActiveStackInPlace(t *testing.T) {
	m := NewManager()
	m.CreateStack(loc("a.ex"))
	m.CreateStack(loc("b.ex"))
	m.Ingest(snap(2, ev("x", "x.ex")), ctx("x.ex"))

	active := m.Active()
	id := active.ID
	name := active.Name

	m.Clear()

	if m.Active() != active {
		t.Fatalf("expected cleared stack to stay active")
	}
	if active.ID != id || active.Name != name {
		t.Fatalf("expected identity preserved across clear")
	}
	if len(active.Display) != 0 || active.MaxDepth != 0 || !active.AtRoot {
		t.Fatalf("expected emptied stack, got display=%v maxDepth=%d atRoot=%v",
			active.Display, active.MaxDepth, active.AtRoot)
	}
	if len(m.Stacks()) != 2 {
		t.Fatalf("expected both stacks retained, got %d", len(m.Stacks()))
	}
}

func TestHasHistory(t *testing.T) {
	m := NewManager()
	if m.HasHistory() {
		t.Fatalf("expected no history on empty manager")
	}
	m.CreateStack(loc("a.ex"))
	if m.HasHistory() {
		t.Fatalf("expected no history before any jump")
	}
	m.Ingest(snap(2, ev("x", "x.ex")), ctx("x.ex"))
	if !m.HasHistory() {
		t.Fatalf("expected history after ingest")
	}
}

func TestVersionBumpsOnMutation(t *testing.T) {
	m := NewManager()
	v := m.Version()
	m.CreateStack(loc("a.ex"))
	if m.Version() == v {
		t.Fatalf("expected version bump on create")
	}
	v = m.Version()
	m.Ingest(snap(2, ev("x", "x.ex")), ctx("x.ex"))
	if m.Version() == v {
		t.Fatalf("expected version bump on ingest")
	}
	v = m.Version()
	m.Rename("Renamed")
	if m.Version() == v {
		t.Fatalf("expected version bump on rename")
	}
}
