// Package dispatch implements a pattern-compiled, multi-match request
// dispatch engine: declarative path patterns compile to matchers, routes
// sit in an ordered table, and one dispatch pass runs every matching
// handler in registration order.
//
// It assumes a request already parsed into a method string and a
// normalized path string; there is no server, transport, or response
// surface here. Method semantics follow RFC 9110 (method tokens,
// case-insensitive matching, HEAD satisfying GET, Allow sets).
//
// # Patterns
//
// A pattern is literal text with bracketed blocks. A block of the form
// [type:name] is a placeholder:
//
//	/users/[i:id]        one or more digits, captured as "id"
//	/posts/[:slug]       one path segment, captured as "slug"
//	/files/[**:rest]     the remainder of the path, captured as "rest"
//	/tags/[*]            one segment, captured positionally
//	/v/[@[0-9]+\.[0-9]+:ver]  an embedded expression, captured as "ver"
//
// Placeholder types:
//
//	(none) one path segment
//	i      integer: one or more digits
//	a      alphabetic: one or more letters
//	h      hexadecimal digits
//	s      URL slug: letters, digits, hyphen, underscore
//	*      one segment, greedy
//	**     the rest of the path, including slashes; nothing may follow
//	@expr  an embedded expression, inserted without escaping
//
// Additional types can be registered on a table's TypeSet:
//
//	t := dispatch.NewTable()
//	t.TypeSet().Register("yr", `[0-9]{4}`)
//	t.Get("/archive/[yr:year]", handler)
//
// A block that is not a placeholder is an optional group; groups nest
// and may mix literals and placeholders:
//
//	/posts[/[i:page]]    matches /posts and /posts/7
//
// Literal text is escaped automatically; only @ expressions reach the
// matching engine verbatim. Every matcher accepts its path with and
// without one trailing slash. An empty pattern matches every path.
//
// # Dispatch
//
// Dispatch walks the whole table in registration order and invokes
// every route whose pattern and method filter match, not only the
// first. Early routes can seed shared state that later, more specific
// routes consume. A handler ends the pass early by returning Stop.
//
//	t := dispatch.NewTable()
//	t.Always(setupHandler)
//	t.Get("/users/[i:id]", userHandler)
//	t.Freeze()
//
//	d := dispatch.NewDispatcher(t)
//	out := d.Dispatch(ctx, "GET", "/users/42")
//
// Per route the evaluation is three-valued: pattern miss, pattern match
// with a method miss, or full match. A pattern match on a counting
// route increments the pass match counter even when the method filter
// declines; a method miss contributes the route's methods to the Allow
// set and never invokes the handler.
//
// Captures merge cumulatively across matched routes: later routes
// overwrite same-named parameters, positional captures append, and
// every handler sees the merged state through the shared Context.
//
// # Outcomes
//
// A pass resolves to one of four outcome kinds, always returned as a
// value:
//
//	Handled           at least one handler ran, none failed
//	NotFound          no pattern matched the path
//	MethodNotAllowed  patterns matched, every filter declined; Allow
//	                  carries the accepted method union
//	Failed            a handler returned a failure, carried in Err
//
// The dispatcher never maps outcomes to status codes or retries; that
// policy belongs to the caller.
//
// # Reverse Generation
//
// Named routes render concrete paths from parameter values:
//
//	t.Add(dispatch.NewRoute("/posts/[i:id]", h).Methods("GET").Name("post"))
//	p, err := t.PathFor("post", dispatch.Params{"id": "42"})  // "/posts/42"
//
// Values must satisfy the placeholder they fill. An optional group is
// omitted entirely when any of its own placeholders has no value:
//
//	t.Add(dispatch.NewRoute("/posts[/[i:page]]", h).Name("posts"))
//	t.PathFor("posts", nil)                          // "/posts"
//	t.PathFor("posts", dispatch.Params{"page": "3"}) // "/posts/3"
//
// # Concurrency
//
// Build the table during configuration, call Freeze, and dispatch from
// any number of goroutines; each pass owns a fresh Context. The table
// is not safe for concurrent mutation, and a Context must never be
// retained beyond its pass.
//
// # Observers
//
// An Observer receives hooks around each pass for metrics and tracing;
// the telemetry package provides an OpenTelemetry-backed one:
//
//	d := dispatch.NewDispatcher(t).Observe(recorder)
package dispatch
