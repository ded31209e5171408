package xzap

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// CtxTraceID carries the request trace id through context.
type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.Logger
)

// Init replaces the package logger. Call once at startup; without it the
// package falls back to zap's production config.
func Init(mode string) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		var cfg zap.Config
		if mode == "debug" {
			cfg = zap.NewDevelopmentConfig()
		} else {
			cfg = zap.NewProductionConfig()
		}
		logger, err = cfg.Build(zap.AddCallerSkip(1))
	})
	return logger, err
}

func base() *zap.Logger {
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return logger
}

// WithTraceID returns a context tagged with a trace id picked up by
// WithContext.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// WithContext returns the logger enriched with the trace id carried by ctx,
// if any.
func WithContext(ctx context.Context) *zap.Logger {
	l := base()
	if ctx == nil {
		return l
	}
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok && traceID != "" {
		return l.With(zap.String("trace_id", traceID))
	}
	return l
}

func Sync() {
	_ = base().Sync()
}
