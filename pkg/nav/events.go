package nav

import "log/slog"

// Lifecycle event names emitted through the Emitter collaborator.
const (
	EventRouteChanged  = "route:changed"
	EventRouteNotFound = "route:notfound"
	EventRouteDenied   = "route:denied"
	EventPageShow      = "page:show"
	EventPageHide      = "page:hide"
	EventPageChanged   = "page:changed"
)

// RouteEvent is the payload for route:* events.
type RouteEvent struct {
	// Path is the normalized logical path of the navigation.
	Path string

	// Page is the identifier of the page involved, if resolved.
	Page string

	// Params are the extracted route parameters, if resolved.
	Params map[string]string

	// Err carries the diagnostic for route:notfound when the miss came
	// from a construction failure rather than a true unresolved route.
	Err error
}

// PageEvent is the payload for page:* events.
type PageEvent struct {
	// Page is the page identifier.
	Page string

	// Path is the logical path that made the page active, for page:show
	// and page:changed.
	Path string
}

// Emitter is the event-bus collaborator the orchestrator emits through.
// The core never implements a bus; it only talks to one.
type Emitter interface {
	Emit(event string, payload any)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event string, payload any)

// Emit implements Emitter.
func (f EmitterFunc) Emit(event string, payload any) { f(event, payload) }

// NopEmitter discards all events.
func NopEmitter() Emitter {
	return EmitterFunc(func(string, any) {})
}

// LogEmitter writes every event to a structured logger at debug level.
// Useful during development and in headless embeddings without a bus.
func LogEmitter(logger *slog.Logger) Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return EmitterFunc(func(event string, payload any) {
		logger.Debug("navigation event", "event", event, "payload", payload)
	})
}
