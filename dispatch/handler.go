package dispatch

// Params holds the named captures accumulated during one dispatch pass.
// Later matches overwrite earlier values under the same name. Handlers
// may write to it; writes are visible to the handlers that follow in the
// same pass.
type Params map[string]string

// Handler is invoked for every route whose pattern and method filter
// both match during a dispatch pass.
//
// The returned value, when non-nil, is appended to the pass output.
// Returning a nil value continues the pass without output. Returning
// Stop, possibly wrapped, ends the pass without failing it; any other
// error ends the pass and the dispatch reports Failed.
type Handler interface {
	ServeDispatch(params Params, dc *Context) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(params Params, dc *Context) (any, error)

// ServeDispatch calls f(params, dc).
func (f HandlerFunc) ServeDispatch(params Params, dc *Context) (any, error) {
	return f(params, dc)
}
