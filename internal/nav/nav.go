// Package nav defines the navigation data model shared between the editor
// integration and the history engine.
package nav

// Location identifies a position inside a file known to the editor.
type Location struct {
	File string
	Line int
}

// Event is one recorded "jump to symbol" action: the tag that was followed and
// the location the jump originated from.
type Event struct {
	Tag    string
	Origin Location
}

// Snapshot is the editor-owned navigation stack as observed at one point in
// time. CurrentIndex is 1-based as reported by the host; the engine normalizes
// it internally.
type Snapshot struct {
	Items        []Event
	CurrentIndex int
}

// Context is a cheap change signal for the host editor: the focused file and
// cursor line plus the buffer change counter. Watching it costs one remote
// round trip; reading the full Snapshot is deferred to the debounced path.
type Context struct {
	File string
	Line int
	Tick int
}

// Source provides pull-based access to the host editor's navigation state.
type Source interface {
	// Stack returns the current navigation snapshot.
	Stack() (Snapshot, error)
	// Context returns the cheap change signal for trigger detection.
	Context() (Context, error)
	// ClearStack resets the editor-owned navigation stack to empty.
	ClearStack() error
	// Jump repositions the editor at the given 0-based depth of its stack
	// (0 means the root, before the first recorded jump).
	Jump(depth int) error
}
