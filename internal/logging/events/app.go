package events

import "github.com/atomicstack/tty-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop() {
	logging.Trace("app.stop", nil)
}

func (AppTracer) TreeLoaded(source string, containers, items int) {
	logging.Trace("app.tree-loaded", map[string]interface{}{
		"source":     source,
		"containers": containers,
		"items":      items,
	})
}
