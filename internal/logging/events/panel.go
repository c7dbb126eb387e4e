package events

import "navtrail/internal/logging"

type PanelTracer struct{}

type panelReason string

const (
	PanelReasonEscape panelReason = "escape"
	PanelReasonEmpty  panelReason = "empty"
)

var Panel = PanelTracer{}

func (PanelTracer) Render(lines int, cached bool) {
	logging.Trace("panel.render", map[string]interface{}{"lines": lines, "cached": cached})
}

func (PanelTracer) Filter(query string, matches int) {
	logging.Trace("panel.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (PanelTracer) FilterCleared() {
	logging.Trace("panel.filter.cleared", nil)
}

func (PanelTracer) RenamePrompt(id int) {
	logging.Trace("panel.rename.prompt", map[string]interface{}{"id": id})
}

func (PanelTracer) CancelRename(id int, reason panelReason) {
	logging.Trace("panel.rename.cancel", map[string]interface{}{"id": id, "reason": string(reason)})
}

func (PanelTracer) SubmitRename(id int, name string) {
	logging.Trace("panel.rename.submit", map[string]interface{}{"id": id, "name": name})
}

func (PanelTracer) Jump(depth int) {
	logging.Trace("panel.jump", map[string]interface{}{"depth": depth})
}
