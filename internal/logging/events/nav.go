package events

import "github.com/atomicstack/tty-menu/internal/logging"

type NavTracer struct{}

type RenderTracer struct{}

type ActionTracer struct{}

var (
	Nav    = NavTracer{}
	Render = RenderTracer{}
	Action = ActionTracer{}
)

func (NavTracer) Key(container, key string) {
	logging.Trace("nav.key", map[string]interface{}{"container": container, "key": key})
}

func (NavTracer) Cursor(container string, index int) {
	logging.Trace("nav.cursor", map[string]interface{}{"container": container, "index": index})
}

func (NavTracer) Enter(parent, child string) {
	logging.Trace("nav.enter", map[string]interface{}{"parent": parent, "child": child})
}

func (NavTracer) Exit(container, parent string) {
	logging.Trace("nav.exit", map[string]interface{}{"container": container, "parent": parent})
}

func (NavTracer) Collapse(from string) {
	logging.Trace("nav.collapse", map[string]interface{}{"from": from})
}

func (NavTracer) Quit() {
	logging.Trace("nav.quit", nil)
}

func (RenderTracer) Draw(container string, row, col, width, height int) {
	logging.Trace("render.draw", map[string]interface{}{
		"container": container,
		"row":       row,
		"col":       col,
		"width":     width,
		"height":    height,
	})
}

func (RenderTracer) Erase(container string) {
	logging.Trace("render.erase", map[string]interface{}{"container": container})
}

func (RenderTracer) IOError(err error) {
	if err == nil {
		return
	}
	logging.Trace("render.io-error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Invoke(item string, background, pause bool) {
	logging.Trace("action.invoke", map[string]interface{}{
		"item":       item,
		"background": background,
		"pause":      pause,
	})
}

func (ActionTracer) Completed(item string) {
	logging.Trace("action.completed", map[string]interface{}{"item": item})
}

func (ActionTracer) ArgumentError(item, message string) {
	logging.Trace("action.argument-error", map[string]interface{}{"item": item, "message": message})
}

func (ActionTracer) Failed(item string, err error) {
	payload := map[string]interface{}{"item": item}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("action.failed", payload)
}
