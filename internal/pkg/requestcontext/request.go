package requestcontext

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	operatorIDKey
)

// WithRequestID stores the inbound request ID. An empty ID leaves ctx unchanged.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID carried by ctx, or ""
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOperatorID records the authenticated operator acting on the request
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	if operatorID == "" {
		return ctx
	}
	return context.WithValue(ctx, operatorIDKey, operatorID)
}

// OperatorID returns the operator recorded on ctx, or ""
func OperatorID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(operatorIDKey).(string)
	return id
}
