package dispatch

import (
	"fmt"
	"iter"
)

// Table is an ordered collection of routes. Registration order is the
// order the dispatcher evaluates routes in; the table never re-sorts.
//
// A Table is not safe for concurrent mutation. Build it during
// configuration, call Freeze, and it can then serve any number of
// concurrent dispatch passes.
type Table struct {
	routes []*Route
	named  map[string]*Route
	types  *TypeSet
	frozen bool
}

// NewTable returns an empty table using the default placeholder types.
func NewTable() *Table {
	return &Table{
		named: make(map[string]*Route),
		types: DefaultTypes(),
	}
}

// TypeSet returns the placeholder types patterns are compiled against.
// Registering a type affects only routes added afterward.
func (t *Table) TypeSet() *TypeSet {
	return t.types
}

// Add compiles the route's pattern and appends the route. It fails
// fast: a pattern syntax error, a duplicate name, an invalid method
// token, or a missing handler rejects the route and leaves the table
// unchanged.
func (t *Table) Add(r *Route) error {
	return t.AddGroup("", r)
}

// AddGroup registers routes with prefix prepended to each pattern,
// preserving their relative order. Registration is atomic: on the first
// error no route from the group remains in the table.
func (t *Table) AddGroup(prefix string, routes ...*Route) error {
	if t.frozen {
		return ErrTableFrozen
	}

	type staged struct {
		route    *Route
		pattern  string
		compiled *matcher
	}

	batch := make([]staged, 0, len(routes))
	seen := make(map[string]bool)

	for _, r := range routes {
		if r.err != nil {
			return r.err
		}
		if r.handler == nil {
			return fmt.Errorf("%w: pattern %q", ErrNilHandler, r.pattern)
		}
		if r.compiled != nil {
			return fmt.Errorf("dispatch: route %q is already registered", r.pattern)
		}
		if r.name != "" {
			if _, ok := t.named[r.name]; ok || seen[r.name] {
				return fmt.Errorf("%w: %q", ErrDuplicateName, r.name)
			}
			seen[r.name] = true
		}

		pattern := prefix + r.pattern
		m, err := compilePattern(pattern, t.types)
		if err != nil {
			return err
		}
		batch = append(batch, staged{route: r, pattern: pattern, compiled: m})
	}

	for _, s := range batch {
		s.route.pattern = s.pattern
		s.route.compiled = s.compiled
		if s.route.name != "" {
			t.named[s.route.name] = s.route
		}
		t.routes = append(t.routes, s.route)
	}

	return nil
}

// Handle registers pattern with a handler for any method.
func (t *Table) Handle(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h))
}

// Get registers pattern with a handler for GET (and HEAD) requests.
func (t *Table) Get(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("GET"))
}

// Post registers pattern with a handler for POST requests.
func (t *Table) Post(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("POST"))
}

// Put registers pattern with a handler for PUT requests.
func (t *Table) Put(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("PUT"))
}

// Delete registers pattern with a handler for DELETE requests.
func (t *Table) Delete(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("DELETE"))
}

// Patch registers pattern with a handler for PATCH requests.
func (t *Table) Patch(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("PATCH"))
}

// Head registers pattern with a handler for HEAD requests.
func (t *Table) Head(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("HEAD"))
}

// Options registers pattern with a handler for OPTIONS requests.
func (t *Table) Options(pattern string, h Handler) error {
	return t.Add(NewRoute(pattern, h).Methods("OPTIONS"))
}

// Always registers a handler invoked for every path, typically a setup
// route that seeds shared state for the handlers that follow. The route
// does not count as a match.
func (t *Table) Always(h Handler) error {
	return t.Add(NewRoute("", h).CountMatch(false))
}

// FindByName returns the route registered under name.
func (t *Table) FindByName(name string) (*Route, bool) {
	r, ok := t.named[name]
	return r, ok
}

// All returns the routes in registration order as a lazy, restartable
// sequence. The sequence never exposes the table's internal storage.
func (t *Table) All() iter.Seq[*Route] {
	return func(yield func(*Route) bool) {
		for _, r := range t.routes {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Freeze marks the table complete. Further registration fails with
// ErrTableFrozen, and the table is safe for concurrent dispatch.
func (t *Table) Freeze() {
	t.frozen = true
}

// PathFor renders a concrete path for the named route. Placeholders are
// substituted with the values under their names; a value must satisfy
// the placeholder's expression. An optional group missing any of its own
// placeholder values is omitted entirely from the output. It fails with
// ErrRouteNotFound for an unknown name and ErrMissingParameter for an
// absent required value.
func (t *Table) PathFor(name string, params Params) (string, error) {
	r, ok := t.named[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return r.compiled.pathFor(params)
}
