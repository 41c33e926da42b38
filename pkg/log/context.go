package log

import (
	"context"

	"go.uber.org/zap"
)

// WithFields returns a context carrying a child logger with the given key/value pairs.
// Loggers not created by this package leave the context unchanged.
func WithFields(ctx context.Context, l Logger, keysAndValues ...any) context.Context {
	zl, ok := l.(*zapLogger)
	if !ok || len(keysAndValues) == 0 {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, zl.ctx(ctx).With(keysAndValues...))
}

func newNop() *zapLogger {
	return &zapLogger{
		sugarLogger: zap.NewNop().Sugar(),
		cfg:         &ZapConfig{Level: LevelError},
	}
}
