package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerCtxKey keys the request-scoped logger inside a context.
type loggerCtxKey struct{}

// WithLogger returns a child context carrying logger, typically one
// pre-seeded with request fields. Handlers read it back with
// FromContext.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or the package default
// when none is attached.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
