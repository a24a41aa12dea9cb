package hooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitalvas/cascade/dispatch"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not
// greater than zero.
var ErrInvalidTimeout = errors.New("hooks: timeout duration must be greater than zero")

// ErrTimeout fails the pass when the wrapped handler does not complete
// within the configured duration.
var ErrTimeout = errors.New("hooks: handler timed out")

// TimeoutConfig configures the Timeout decorator behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the handler to complete.
	// Must be greater than zero.
	Duration time.Duration
}

// Timeout returns a decorator that limits the wrapped handler's
// execution time. The handler runs with a context whose deadline is
// narrowed to the configured duration; when it does not return in time
// the pass fails with ErrTimeout and the handler's eventual result is
// discarded. The handler goroutine keeps running until it observes the
// canceled context, so wrapped handlers should honor dc.Context().
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func Timeout(cfg TimeoutConfig) (Middleware, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration

	return func(next dispatch.Handler) dispatch.Handler {
		return dispatch.HandlerFunc(func(params dispatch.Params, dc *dispatch.Context) (any, error) {
			ctx, cancel := context.WithTimeout(dc.Context(), duration)
			defer cancel()

			type result struct {
				v   any
				err error
			}
			done := make(chan result, 1)

			go func() {
				v, err := next.ServeDispatch(params, dc.WithContext(ctx))
				done <- result{v: v, err: err}
			}()

			select {
			case res := <-done:
				return res.v, res.err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, fmt.Errorf("%w after %s", ErrTimeout, duration)
				}
				return nil, ctx.Err()
			}
		})
	}, nil
}
