// Package appctx carries request-scoped values through context.
package appctx

import (
	"context"

	"github.com/google/uuid"
)

// TraceContext contains request tracing information.
type TraceContext struct {
	RequestID string
	UserName  string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// GetUserName returns the acting user's name from context.
// Document audit stamps (created by, approved by) read this value.
func GetUserName(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.UserName
	}
	return ""
}

// WithUserName returns a context whose trace carries the acting user.
func WithUserName(ctx context.Context, name string) context.Context {
	t := GetTrace(ctx)
	if t == nil {
		return WithTrace(ctx, &TraceContext{RequestID: uuid.New().String(), UserName: name})
	}
	copied := *t
	copied.UserName = name
	return WithTrace(ctx, &copied)
}

// NewTraceContext creates a new TraceContext with a generated request ID.
func NewTraceContext() *TraceContext {
	return &TraceContext{
		RequestID: uuid.New().String(),
	}
}
