// Package hooks provides handler decorators and pass-level hooks for
// the dispatch engine.
//
// # Recovery
//
// Recovery converts a handler panic into a failed pass carrying a
// *PanicError, so one bad handler cannot unwind through Dispatch.
//
//	h := hooks.Chain(appHandler, hooks.Recovery(hooks.RecoveryConfig{}))
//	tbl.Get("/users/[i:id]", h)
//
// # PassID
//
// PassID is a setup handler that stamps a correlation ID into the pass
// store. Register it through Table.Always before the real routes; read
// it back anywhere in the pass with PassIDFrom.
//
//	tbl.Always(hooks.PassID(hooks.PassIDConfig{
//	    GenerateFunc: hooks.GenerateUUIDv7,
//	}))
//
// # AccessLog
//
// AccessLog returns a Dispatcher.AfterDispatch hook that writes one
// structured line per pass with log/slog.
//
//	d := dispatch.NewDispatcher(tbl).
//	    AfterDispatch(hooks.AccessLog(hooks.AccessLogConfig{}))
//
// # Timeout
//
// Timeout narrows the handler's context deadline and fails the pass
// with ErrTimeout when the handler overruns it.
//
//	mw, err := hooks.Timeout(hooks.TimeoutConfig{Duration: time.Second})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tbl.Get("/slow", hooks.Chain(slowHandler, mw))
package hooks
