package store

import "context"

type (
	reqIDKey struct{}
	runIDKey struct{}
)

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID retrieves a request id from context if present
func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(reqIDKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// WithRunID attaches a pipeline run id to the context
// runners stamp one id per invocation so every unit/batch log line correlates
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID retrieves a pipeline run id from context if present
func RunID(ctx context.Context) (string, bool) {
	v := ctx.Value(runIDKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
