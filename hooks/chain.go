package hooks

import "github.com/vitalvas/cascade/dispatch"

// Middleware decorates a handler with cross-cutting behaviour.
type Middleware func(dispatch.Handler) dispatch.Handler

// Chain wraps h with the given decorators so the first one listed is the
// outermost at invocation time.
func Chain(h dispatch.Handler, ms ...Middleware) dispatch.Handler {
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}

	return h
}
