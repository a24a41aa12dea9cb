package dispatch

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Route is one table entry: a path pattern, an optional method filter,
// and the handler invoked when both match.
//
// Routes are built with NewRoute and configured through the fluent
// setters before registration. Configuration errors are deferred and
// surface when the route is added to a table. A registered route must
// not be modified.
type Route struct {
	pattern    string
	compiled   *matcher
	methods    []string // nil matches any method
	name       string
	countMatch bool
	handler    Handler
	err        error
}

// NewRoute returns a route matching pattern with the given handler. The
// pattern is compiled when the route is added to a table; an empty
// pattern matches every path.
func NewRoute(pattern string, h Handler) *Route {
	return &Route{
		pattern:    pattern,
		countMatch: true,
		handler:    h,
	}
}

// Methods sets the route's method filter. Entries are matched
// case-insensitively against the request method token (RFC 9110
// Section 9.1), and a HEAD request additionally satisfies a GET filter.
// Calling Methods with no arguments removes the filter so the route
// matches any method.
func (r *Route) Methods(methods ...string) *Route {
	if r.err != nil {
		return r
	}
	if len(methods) == 0 {
		r.methods = nil
		return r
	}

	ms := make([]string, len(methods))
	for i, m := range methods {
		if !httpguts.ValidHeaderFieldName(m) {
			r.err = fmt.Errorf("%w: %q", ErrMethodToken, m)
			return r
		}
		ms[i] = strings.ToUpper(m)
	}
	r.methods = ms

	return r
}

// Name sets the route's name for reverse path generation. A route
// carries at most one name; uniqueness across the table is checked at
// registration.
func (r *Route) Name(name string) *Route {
	if r.err != nil {
		return r
	}
	if r.name != "" {
		r.err = fmt.Errorf("dispatch: route already has name %q, can't set %q", r.name, name)
		return r
	}
	if name == "" {
		r.err = fmt.Errorf("dispatch: empty route name")
		return r
	}
	r.name = name

	return r
}

// CountMatch controls whether a pattern match against this route
// increments the pass match counter. It defaults to true; setup routes
// that should not count as real matches set it to false.
func (r *Route) CountMatch(v bool) *Route {
	r.countMatch = v
	return r
}

// GetPattern returns the route's pattern text, including the group
// prefix when the route was registered through AddGroup.
func (r *Route) GetPattern() string {
	return r.pattern
}

// GetMethods returns a copy of the method filter, or nil when the route
// matches any method.
func (r *Route) GetMethods() []string {
	if r.methods == nil {
		return nil
	}
	return append([]string(nil), r.methods...)
}

// GetName returns the route's name, if any.
func (r *Route) GetName() string {
	return r.name
}

// GetHandler returns the route's handler.
func (r *Route) GetHandler() Handler {
	return r.handler
}

// CountsMatch reports whether a pattern match against this route
// increments the pass match counter.
func (r *Route) CountsMatch() bool {
	return r.countMatch
}

// GetError returns any error deferred by the fluent setters.
func (r *Route) GetError() error {
	return r.err
}

// PathFor renders a concrete path for the route from the given
// parameters. See Table.PathFor for the substitution rules. The route
// must have been registered, so its pattern is compiled.
func (r *Route) PathFor(params Params) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.compiled == nil {
		return "", fmt.Errorf("%w: route %q is not registered", ErrRouteNotFound, r.pattern)
	}
	return r.compiled.pathFor(params)
}

// matchResult is the three-valued outcome of testing one route: the
// pattern missed, the pattern matched but the method filter declined, or
// both matched.
type matchResult int

const (
	matchNone matchResult = iota
	matchMethodMiss
	matchFull
)

// match tests the route against an upper-cased method and a path.
// Submatches are returned only on a full match.
func (r *Route) match(method, path string) (matchResult, []string) {
	sub, ok := r.compiled.match(path)
	if !ok {
		return matchNone, nil
	}
	if !r.allows(method) {
		return matchMethodMiss, nil
	}

	return matchFull, sub
}

// allows reports whether the upper-cased method satisfies the filter.
func (r *Route) allows(method string) bool {
	if r.methods == nil {
		return true
	}
	for _, m := range r.methods {
		if m == method {
			return true
		}
		if method == "HEAD" && m == "GET" {
			return true
		}
	}

	return false
}
