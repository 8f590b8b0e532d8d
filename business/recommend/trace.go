package recommend

import "context"

type ctxKey string

// TraceIDKey carries the request correlation id into engine diagnostics so
// degraded-mode log lines can be tied back to one HTTP request.
const TraceIDKey ctxKey = "trace_id"

// WithTraceID tags ctx for log correlation; the rest layer calls this with
// the echo request id before invoking the engine. Empty ids are dropped.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, id)
}

func TraceIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(TraceIDKey).(string); ok {
		return s
	}
	return ""
}
