package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored by the API middleware, if any.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of op when the returned func is deferred.
//
//	defer obs.Time(ctx, logger, "mapbox.GetTravelTimes")(&err)
func Time(ctx context.Context, logger *slog.Logger, name string) func(errp *error) {
	start := time.Now()
	if logger == nil {
		logger = slog.Default()
	}

	return func(errp *error) {
		dur := time.Since(start)

		attrs := []any{
			slog.String("req_id", RequestID(ctx)),
			slog.String("op", name),
			slog.Int64("dur_ms", dur.Milliseconds()),
		}

		if errp != nil && *errp != nil {
			logger.WarnContext(ctx, "operation failed", append(attrs, slog.Any("err", *errp))...)
			return
		}
		logger.DebugContext(ctx, "operation completed", attrs...)
	}
}
