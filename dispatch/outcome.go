package dispatch

// OutcomeKind classifies the result of one dispatch pass.
type OutcomeKind int

const (
	// Handled reports that at least one handler ran and none failed.
	Handled OutcomeKind = iota
	// NotFound reports that no route's pattern matched the path.
	NotFound
	// MethodNotAllowed reports that patterns matched but every matching
	// route's method filter declined the request method.
	MethodNotAllowed
	// Failed reports that a handler returned a failure; later handlers
	// did not run.
	Failed
)

// String returns the kind name used in logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case Handled:
		return "handled"
	case NotFound:
		return "not_found"
	case MethodNotAllowed:
		return "method_not_allowed"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// Outcome is the value a dispatch pass resolves to. Outcomes are always
// returned, never raised: NotFound and MethodNotAllowed are expected
// results of the algorithm, and a handler failure travels inside a
// Failed outcome so the caller decides policy.
type Outcome struct {
	// Kind classifies the pass.
	Kind OutcomeKind

	// Matched is the final match count: the number of counting routes
	// whose pattern matched the path, independent of method filters and
	// handler results. Callers may treat a Handled outcome with
	// Matched == 0 as not found when only setup routes ran; that policy
	// is theirs, not the dispatcher's.
	Matched int

	// Allow is the sorted union of the methods accepted by the routes
	// whose pattern matched, set only for MethodNotAllowed. It includes
	// HEAD whenever GET is accepted.
	Allow []string

	// Err is the failure carried by a Failed outcome.
	Err error

	// Output collects the non-nil values returned by the handlers that
	// ran, in invocation order.
	Output []any
}
