package sdk

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Logger is the subset of *zap.SugaredLogger used by the relay.
type Logger interface {
	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
}

type contextLoggerValueT string

const ContextLoggerValue = contextLoggerValueT("govrelay-logger")

var defaultLogger = sync.OnceValue(func() Logger {
	return zap.Must(zap.NewProduction()).Sugar()
})

// LoggerFrom returns the logger stored in ctx. Contexts without one share a zap production
// logger.
func LoggerFrom(ctx context.Context) Logger {
	if logger, ok := ctx.Value(ContextLoggerValue).(Logger); ok {
		return logger
	}

	return defaultLogger()
}

// ContextWithLogger returns a copy of ctx carrying logger.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, ContextLoggerValue, logger)
}
