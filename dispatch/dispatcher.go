package dispatch

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// Request is the minimal request surface the dispatcher consumes.
// Transport adapters expose their native request type through it.
type Request interface {
	Method() string
	Path() string
}

// Dispatcher evaluates a table against incoming requests.
//
// A dispatch pass walks the whole table in registration order and runs
// every route whose pattern and method filter match, not only the
// first, so shared setup routes can run before the route that produces
// the result. Handlers end a pass early by returning Stop.
type Dispatcher struct {
	table    *Table
	observer Observer
	after    func(*Context, Outcome)
	onError  func(*Context, error)
}

// NewDispatcher returns a dispatcher over table.
func NewDispatcher(t *Table) *Dispatcher {
	return &Dispatcher{table: t}
}

// Observe sets the observer notified around each pass.
func (d *Dispatcher) Observe(o Observer) *Dispatcher {
	d.observer = o
	return d
}

// AfterDispatch sets a hook run after every pass with the final context
// and outcome, after the observer's DispatchEnd.
func (d *Dispatcher) AfterDispatch(f func(*Context, Outcome)) *Dispatcher {
	d.after = f
	return d
}

// OnError sets a hook run with the failure of a Failed pass, before
// AfterDispatch.
func (d *Dispatcher) OnError(f func(*Context, error)) *Dispatcher {
	d.onError = f
	return d
}

// Dispatch matches method and path against the table and invokes every
// matching route's handler in registration order.
//
// Per route the evaluation is three-valued: the pattern may miss, the
// pattern may match while the method filter declines, or both may
// match. A pattern match on a counting route increments the match
// counter whether or not the method filter accepts. A method miss never
// invokes the handler; it accumulates the Allow set reported when
// nothing else handles the request.
//
// The handler invocation boundary checks ctx: once ctx is canceled no
// further handler runs and the pass fails with ctx.Err(). Matching
// itself is never interrupted.
func (d *Dispatcher) Dispatch(ctx context.Context, method, path string) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.ToUpper(method)

	var state any
	if d.observer != nil {
		ctx, state = d.observer.DispatchStart(ctx, method, path)
	}
	dc := newContext(ctx, method, path)

	var (
		pathMatched bool
		invoked     int
		allow       map[string]struct{}
	)

	for _, r := range d.table.routes {
		res, sub := r.match(method, path)
		if res == matchNone {
			continue
		}

		pathMatched = true
		if r.countMatch {
			dc.matched++
		}

		if res == matchMethodMiss {
			if allow == nil {
				allow = make(map[string]struct{})
			}
			for _, m := range r.methods {
				allow[m] = struct{}{}
				if m == "GET" {
					allow["HEAD"] = struct{}{}
				}
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			dc.err = err
			break
		}

		r.compiled.addVars(dc, sub)
		dc.route = r
		if d.observer != nil {
			d.observer.RouteMatched(ctx, state, r)
		}

		v, err := r.handler.ServeDispatch(dc.params, dc)
		switch {
		case err == nil:
			invoked++
			if v != nil {
				dc.output = append(dc.output, v)
			}
		case errors.Is(err, Stop):
			invoked++
			if v != nil {
				dc.output = append(dc.output, v)
			}
			dc.stopped = true
		default:
			dc.err = err
		}
		if dc.stopped || dc.err != nil {
			break
		}
	}

	out := Outcome{Matched: dc.matched, Output: dc.output}
	switch {
	case dc.err != nil:
		out.Kind = Failed
		out.Err = dc.err
	case invoked > 0:
		out.Kind = Handled
	case pathMatched:
		out.Kind = MethodNotAllowed
		out.Allow = sortedMethods(allow)
	default:
		out.Kind = NotFound
	}

	if d.observer != nil {
		d.observer.DispatchEnd(ctx, state, dc, out)
	}
	if out.Kind == Failed && d.onError != nil {
		d.onError(dc, out.Err)
	}
	if d.after != nil {
		d.after(dc, out)
	}

	return out
}

// DispatchRequest dispatches req's method and path.
func (d *Dispatcher) DispatchRequest(ctx context.Context, req Request) Outcome {
	return d.Dispatch(ctx, req.Method(), req.Path())
}

// sortedMethods flattens the allow set alphabetically for a stable
// Allow value, as RFC 9110 Section 10.2.1 responses list it.
func sortedMethods(set map[string]struct{}) []string {
	ms := make([]string, 0, len(set))
	for m := range set {
		ms = append(ms, m)
	}
	sort.Strings(ms)

	return ms
}
