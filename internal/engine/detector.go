package engine

import "navtrail/internal/nav"

// ChangeDetector decides cheaply whether the host snapshot moved since the
// last observation. It compares the live index, the item count, and the tag
// identity of the first and last item, bounding per-event cost to O(1)
// instead of walking the whole stack.
type ChangeDetector struct {
	cached nav.Snapshot
	primed bool
}

// Poll reports whether snap differs from the cached observation. The cached
// snapshot is replaced on every call regardless of the outcome. Before the
// first call there is nothing to compare against, so Poll reports changed.
func (d *ChangeDetector) Poll(snap nav.Snapshot) bool {
	changed := d.changed(snap)
	d.cached = snap
	d.primed = true
	return changed
}

func (d *ChangeDetector) changed(snap nav.Snapshot) bool {
	if !d.primed {
		return true
	}
	prev := d.cached
	if snap.CurrentIndex != prev.CurrentIndex || len(snap.Items) != len(prev.Items) {
		return true
	}
	if len(snap.Items) == 0 {
		return false
	}
	if snap.Items[0].Tag != prev.Items[0].Tag {
		return true
	}
	last := len(snap.Items) - 1
	return snap.Items[last].Tag != prev.Items[last].Tag
}
