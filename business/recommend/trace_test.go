package recommend

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req-123")
	if got := TraceIDFromContext(ctx); got != "req-123" {
		t.Errorf("TraceIDFromContext = %q, want req-123", got)
	}
}

func TestTraceIDEmpty(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != "" {
		t.Errorf("untagged context trace id = %q, want empty", got)
	}

	// Empty ids must not be stored.
	ctx := WithTraceID(context.Background(), "")
	if ctx.Value(TraceIDKey) != nil {
		t.Error("empty trace id should leave the context untagged")
	}
}
