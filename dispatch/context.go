package dispatch

import (
	"context"
	"time"
)

// Context carries the mutable state of one dispatch pass: the captures
// merged so far, the match counter, the stop flag, and the first
// failure. It is created by the dispatcher, passed by shared reference
// to every handler invoked during the pass, and discarded when the pass
// ends. It must not be retained after the pass or shared across
// concurrent passes.
type Context struct {
	method string
	path   string
	ctx    context.Context
	start  time.Time

	params     Params
	positional []string
	route      *Route
	matched    int
	stopped    bool
	err        error
	output     []any

	values map[string]any
}

func newContext(ctx context.Context, method, path string) *Context {
	return &Context{
		method: method,
		path:   path,
		ctx:    ctx,
		start:  time.Now(),
		params: make(Params),
		values: make(map[string]any),
	}
}

// Method returns the upper-cased request method of the pass.
func (c *Context) Method() string { return c.method }

// Path returns the request path the pass is matching.
func (c *Context) Path() string { return c.path }

// Context returns the context the pass was dispatched with.
func (c *Context) Context() context.Context { return c.ctx }

// WithContext returns a shallow copy of c that uses ctx. The copy shares
// the pass state; it exists so invocation-boundary decorators can narrow
// the deadline for a single handler. It panics if ctx is nil.
func (c *Context) WithContext(ctx context.Context) *Context {
	if ctx == nil {
		panic("dispatch: nil context")
	}
	c2 := new(Context)
	*c2 = *c
	c2.ctx = ctx

	return c2
}

// Params returns the named captures accumulated so far.
func (c *Context) Params() Params { return c.params }

// Positional returns the unnamed captures accumulated so far, in pattern
// order across the matched routes.
func (c *Context) Positional() []string { return c.positional }

// Route returns the route whose handler is being invoked, or the last
// one invoked.
func (c *Context) Route() *Route { return c.route }

// MatchedCount returns the number of counting routes whose pattern has
// matched the path so far, independent of method filters and handler
// results.
func (c *Context) MatchedCount() int { return c.matched }

// Stopped reports whether a handler ended the pass with Stop.
func (c *Context) Stopped() bool { return c.stopped }

// Err returns the failure recorded by the pass, if any.
func (c *Context) Err() error { return c.err }

// Elapsed returns the time since the pass began.
func (c *Context) Elapsed() time.Duration { return time.Since(c.start) }

// Set stores a value shared between the handlers of the pass.
func (c *Context) Set(key string, v any) { c.values[key] = v }

// Get returns a value stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}
