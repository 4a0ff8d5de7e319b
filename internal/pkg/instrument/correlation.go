package instrument

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type correlationKey struct{}

// SetCorrelationID stores the request correlation id in ctx.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cID)
}

// GetCorrelationID returns the correlation id carried by ctx. When none was set
// it falls back to the trace id of the active span, or "" when there is neither.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if cID, ok := ctx.Value(correlationKey{}).(string); ok && cID != "" {
		return cID
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
