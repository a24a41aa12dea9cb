package hooks

import (
	"github.com/google/uuid"

	"github.com/vitalvas/cascade/dispatch"
)

// passIDKey is the pass store key the correlation ID is saved under.
const passIDKey = "hooks.pass_id"

// PassIDFrom returns the correlation ID stamped by PassID. Returns an
// empty string if no ID is present.
func PassIDFrom(dc *dispatch.Context) string {
	if v, ok := dc.Get(passIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}

	return ""
}

// PassIDConfig configures the PassID setup handler behaviour.
type PassIDConfig struct {
	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the pass context, allowing ID generation based on the
	// request. Defaults to GenerateUUIDv4.
	GenerateFunc func(dc *dispatch.Context) string
}

// PassID returns a setup handler that stamps a correlation ID into the
// pass store, read back with PassIDFrom. Register it through
// Table.Always ahead of the real routes so every handler of the pass,
// and the AccessLog hook after it, sees the same ID. An ID already
// present is kept.
func PassID(cfg PassIDConfig) dispatch.Handler {
	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	return dispatch.HandlerFunc(func(params dispatch.Params, dc *dispatch.Context) (any, error) {
		if _, ok := dc.Get(passIDKey); !ok {
			dc.Set(passIDKey, generate(dc))
		}

		return nil, nil
	})
}

// GenerateUUIDv4 returns a new UUID v4 string per RFC 9562 Section 5.4.
func GenerateUUIDv4(_ *dispatch.Context) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string per RFC 9562 Section 5.7.
// UUIDs are time-ordered: IDs generated later sort lexicographically
// after earlier ones.
func GenerateUUIDv7(_ *dispatch.Context) string {
	return uuid.Must(uuid.NewV7()).String()
}
