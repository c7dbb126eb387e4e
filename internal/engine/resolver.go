package engine

import "navtrail/internal/nav"

// resolve applies one observed host stack to the persisted display history.
// index is the normalized 0-based live position and is assumed to be within
// [0, len(items)].
//
// Three outcomes:
//   - going deeper than any previously reached position extends the history;
//   - returning to a shallower position with an unchanged prefix preserves
//     the deeper entries (pure backtrack);
//   - returning to a shallower position with a diverging prefix discards the
//     old path and replaces the history with the new one (branch).
func resolve(s *Stack, items []nav.Event, index int) {
	switch {
	case index > s.MaxDepth:
		for len(s.Display) < index {
			s.Display = append(s.Display, nav.Event{})
		}
		for p := s.MaxDepth; p < index && p < len(items); p++ {
			s.Display[p] = items[p]
		}
		s.MaxDepth = index
	case index < len(s.Display):
		if diverges(s.Display, items, index) {
			s.Display = append([]nav.Event(nil), items[:clampLen(index, items)]...)
			s.MaxDepth = index
		}
	}

	backfill(s, items, index)

	s.Items = append([]nav.Event(nil), items...)
	s.CurrentIndex = index
}

// diverges compares the observed prefix against the persisted one by tag
// identity. A position present in one sequence but missing from the other
// counts as a mismatch.
func diverges(display, items []nav.Event, index int) bool {
	for p := 0; p < index; p++ {
		if p >= len(items) || p >= len(display) {
			return true
		}
		if items[p].Tag != display[p].Tag {
			return true
		}
	}
	return false
}

// backfill repairs holes left by non-monotonic host updates: any position up
// to the live one that the display history is missing is copied from the raw
// items.
func backfill(s *Stack, items []nav.Event, index int) {
	for p := 0; p < index && p < len(items); p++ {
		if p >= len(s.Display) {
			s.Display = append(s.Display, items[p])
		} else if s.Display[p].Tag == "" {
			s.Display[p] = items[p]
		}
	}
}

func clampLen(index int, items []nav.Event) int {
	if index > len(items) {
		return len(items)
	}
	return index
}
