package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitalvas/cascade/dispatch"
)

// runPass registers h on /test and dispatches one GET pass against it.
func runPass(t testing.TB, h dispatch.Handler) dispatch.Outcome {
	t.Helper()

	tbl := dispatch.NewTable()
	require.NoError(t, tbl.Get("/test", h))

	return dispatch.NewDispatcher(tbl).Dispatch(context.Background(), "GET", "/test")
}
