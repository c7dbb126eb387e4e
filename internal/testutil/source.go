// Package testutil provides scripted fakes for exercising the engine and
// panel without a live editor.
package testutil

import (
	"sync"

	"navtrail/internal/nav"
)

// Source is a scripted nav.Source. It is safe for concurrent use so the
// backend watcher can poll it from its own goroutine.
type Source struct {
	mu       sync.Mutex
	snap     nav.Snapshot
	ctx      nav.Context
	stackErr error
	ctxErr   error
	cleared  int
	jumps    []int
}

// NewSource returns an empty scripted source.
func NewSource() *Source {
	return &Source{}
}

// SetStack installs the snapshot returned by Stack.
func (s *Source) SetStack(snap nav.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// SetContext installs the context returned by Context.
func (s *Source) SetContext(ctx nav.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

// SetStackErr forces Stack to fail.
func (s *Source) SetStackErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stackErr = err
}

// SetContextErr forces Context to fail.
func (s *Source) SetContextErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxErr = err
}

// Stack implements nav.Source.
func (s *Source) Stack() (nav.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stackErr != nil {
		return nav.Snapshot{}, s.stackErr
	}
	snap := s.snap
	snap.Items = append([]nav.Event(nil), s.snap.Items...)
	return snap, nil
}

// Context implements nav.Source.
func (s *Source) Context() (nav.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctxErr != nil {
		return nav.Context{}, s.ctxErr
	}
	return s.ctx, nil
}

// ClearStack implements nav.Source.
func (s *Source) ClearStack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	s.snap = nav.Snapshot{}
	return nil
}

// Jump implements nav.Source.
func (s *Source) Jump(depth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jumps = append(s.jumps, depth)
	return nil
}

// ClearCalls reports how many times ClearStack ran.
func (s *Source) ClearCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// JumpCalls returns the recorded Jump depths.
func (s *Source) JumpCalls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.jumps...)
}
