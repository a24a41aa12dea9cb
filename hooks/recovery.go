package hooks

import (
	"fmt"

	"github.com/vitalvas/cascade/dispatch"
)

// PanicError carries the value recovered from a panicking handler. The
// pass that hit the panic fails with it, so callers can pick the panic
// value back out with errors.As.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("hooks: handler panicked: %v", e.Value)
}

// RecoveryConfig configures the Recovery decorator behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the pass context and
	// the recovered value when a panic occurs. When nil, no logging is
	// performed.
	LogFunc func(dc *dispatch.Context, v any)
}

// Recovery returns a decorator that recovers from panics in the wrapped
// handler. A recovered panic fails the pass with a *PanicError instead
// of unwinding through the dispatcher.
func Recovery(cfg RecoveryConfig) Middleware {
	return func(next dispatch.Handler) dispatch.Handler {
		return dispatch.HandlerFunc(func(params dispatch.Params, dc *dispatch.Context) (v any, err error) {
			defer func() {
				if r := recover(); r != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(dc, r)
					}

					v, err = nil, &PanicError{Value: r}
				}
			}()

			return next.ServeDispatch(params, dc)
		})
	}
}
