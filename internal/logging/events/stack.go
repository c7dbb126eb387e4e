package events

import "navtrail/internal/logging"

type StackTracer struct{}

var Stack = StackTracer{}

func (StackTracer) Create(id int, name, root string) {
	logging.Trace("stack.create", map[string]interface{}{"id": id, "name": name, "root": root})
}

func (StackTracer) Branch(id int, prevTag, nextTag string) {
	logging.Trace("stack.branch", map[string]interface{}{"id": id, "prev": prevTag, "next": nextTag})
}

func (StackTracer) Switch(id int) {
	logging.Trace("stack.switch", map[string]interface{}{"id": id})
}

func (StackTracer) Clear(id int) {
	logging.Trace("stack.clear", map[string]interface{}{"id": id})
}

func (StackTracer) Rename(id int, name string) {
	logging.Trace("stack.rename", map[string]interface{}{"id": id, "name": name})
}
