package dispatch

import "errors"

// Stop is the control-flow signal a handler returns to end the dispatch
// pass early. It is not a failure: handlers already invoked keep their
// effects and the pass classifies as if the remaining routes were absent.
// The dispatcher detects it with errors.Is, so wrapping is allowed.
var Stop = errors.New("dispatch: stop")

var (
	// ErrPatternSyntax is wrapped by every pattern compilation error:
	// unbalanced brackets, an unknown placeholder type tag, a wildcard
	// with trailing elements, or an invalid embedded expression.
	ErrPatternSyntax = errors.New("dispatch: invalid pattern")

	// ErrDuplicateName reports a route registered under a name that is
	// already taken in the table.
	ErrDuplicateName = errors.New("dispatch: duplicate route name")

	// ErrRouteNotFound reports a PathFor call with an unknown route name.
	ErrRouteNotFound = errors.New("dispatch: no route with that name")

	// ErrMissingParameter reports a PathFor call that left a required
	// placeholder without a value.
	ErrMissingParameter = errors.New("dispatch: missing path parameter")

	// ErrParameterValue reports a PathFor value that does not satisfy
	// the placeholder it fills.
	ErrParameterValue = errors.New("dispatch: parameter value does not match placeholder")

	// ErrTableFrozen reports route registration after Freeze.
	ErrTableFrozen = errors.New("dispatch: table is frozen")

	// ErrNilHandler reports a route added without a handler.
	ErrNilHandler = errors.New("dispatch: route has no handler")

	// ErrMethodToken reports a method filter entry that is not a valid
	// token per RFC 9110 Section 9.1.
	ErrMethodToken = errors.New("dispatch: invalid method token")
)
