package events

import "navtrail/internal/logging"

type EngineTracer struct{}

var Engine = EngineTracer{}

func (EngineTracer) Ingest(stackID, index, displayLen int) {
	logging.Trace("engine.ingest", map[string]interface{}{"stack": stackID, "index": index, "display": displayLen})
}

func (EngineTracer) Unchanged() {
	logging.Trace("engine.unchanged", nil)
}

func (EngineTracer) PollError(err error) {
	logging.Trace("engine.poll.error", map[string]interface{}{"error": err.Error()})
}

func (EngineTracer) Debounce(fast bool) {
	logging.Trace("engine.debounce", map[string]interface{}{"fast": fast})
}

func (EngineTracer) Fire() {
	logging.Trace("engine.fire", nil)
}
