package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is unexported so keys never collide with other packages.
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	loggerKey    contextKey = "logger"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}

// WithLogger stores a request-scoped (usually decorated) zap logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, the fallback, or a nop
// logger, in that order, so callers never get nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Metadata bundles the basic tracing info for manual logging.
type Metadata struct {
	RequestID string
	UserID    string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    GetUserID(ctx),
	}
}
