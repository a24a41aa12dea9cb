package hooks

import (
	"log/slog"

	"github.com/vitalvas/cascade/dispatch"
)

// AccessLogConfig configures the AccessLog hook behaviour.
type AccessLogConfig struct {
	// Logger is the structured logger lines are written to. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Message overrides the log message. Defaults to "dispatch" when
	// empty.
	Message string
}

// AccessLog returns a hook for Dispatcher.AfterDispatch that writes one
// structured line per pass: method, path, outcome, match count, elapsed
// time, and the correlation ID when PassID stamped one. A failed pass
// logs at error level with the failure attached, everything else at
// info.
func AccessLog(cfg AccessLogConfig) func(*dispatch.Context, dispatch.Outcome) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	message := cfg.Message
	if message == "" {
		message = "dispatch"
	}

	return func(dc *dispatch.Context, out dispatch.Outcome) {
		attrs := []any{
			slog.String("method", dc.Method()),
			slog.String("path", dc.Path()),
			slog.String("outcome", out.Kind.String()),
			slog.Int("matched", out.Matched),
			slog.Duration("elapsed", dc.Elapsed()),
		}
		if id := PassIDFrom(dc); id != "" {
			attrs = append(attrs, slog.String("pass_id", id))
		}

		if out.Kind == dispatch.Failed {
			attrs = append(attrs, slog.Any("error", out.Err))
			logger.Error(message, attrs...)
			return
		}

		logger.Info(message, attrs...)
	}
}
