package routefile

import (
	"errors"
	"fmt"

	"github.com/vitalvas/cascade/dispatch"
)

var (
	// ErrUnknownHandler is returned by Build when a route names a
	// handler key the registry does not hold.
	ErrUnknownHandler = errors.New("routefile: unknown handler key")

	// ErrMissingHandler is returned by Build when a route has no
	// handler key at all.
	ErrMissingHandler = errors.New("routefile: route is missing a handler key")

	// ErrDuplicateKey is returned when a handler key is registered
	// twice.
	ErrDuplicateKey = errors.New("routefile: handler key already registered")
)

// Registry resolves the handler keys of a route file to handlers. A
// registry is an explicit value passed into Build; nothing in this
// package is global state.
type Registry struct {
	handlers map[string]dispatch.Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]dispatch.Handler)}
}

// Register binds key to h. Rebinding a taken key fails with
// ErrDuplicateKey, so two packages cannot silently fight over one name.
func (r *Registry) Register(key string, h dispatch.Handler) error {
	if key == "" {
		return fmt.Errorf("routefile: empty handler key")
	}
	if h == nil {
		return fmt.Errorf("routefile: nil handler for key %q", key)
	}
	if _, ok := r.handlers[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.handlers[key] = h

	return nil
}

// RegisterFunc binds key to a handler function.
func (r *Registry) RegisterFunc(key string, f dispatch.HandlerFunc) error {
	return r.Register(key, f)
}

// Lookup returns the handler bound to key.
func (r *Registry) Lookup(key string) (dispatch.Handler, bool) {
	h, ok := r.handlers[key]
	return h, ok
}

// Len returns the number of registered handler keys.
func (r *Registry) Len() int {
	return len(r.handlers)
}
