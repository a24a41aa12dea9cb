package dispatch

import "context"

// Observer receives hooks around a dispatch pass. Implementations
// typically record metrics or traces; the telemetry package provides an
// OpenTelemetry-backed one.
//
// DispatchStart may derive a new context for the pass and return opaque
// state that is handed back to the later hooks, so an implementation
// carries per-pass data without a lookup. RouteMatched is called before
// each handler invocation; implementations should label by the route's
// pattern text, which keeps cardinality bounded by the table size.
type Observer interface {
	DispatchStart(ctx context.Context, method, path string) (context.Context, any)
	RouteMatched(ctx context.Context, state any, r *Route)
	DispatchEnd(ctx context.Context, state any, dc *Context, out Outcome)
}
