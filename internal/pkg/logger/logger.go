package logger

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sync"
)

type ctxKey struct{}

var (
	base   = zap.NewNop().Sugar()
	baseMx sync.RWMutex
)

// Init replaces the process logger. Unknown levels fall back to info.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	baseMx.Lock()
	base = l.Sugar()
	baseMx.Unlock()
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	_ = get().Sync()
}

// ToContext returns a context whose log lines carry the given key/value pairs.
func ToContext(ctx context.Context, keysAndValues ...interface{}) context.Context {
	prev, _ := ctx.Value(ctxKey{}).([]interface{})
	fields := make([]interface{}, 0, len(prev)+len(keysAndValues))
	fields = append(fields, prev...)
	fields = append(fields, keysAndValues...)
	return context.WithValue(ctx, ctxKey{}, fields)
}

func get() *zap.SugaredLogger {
	baseMx.RLock()
	defer baseMx.RUnlock()
	return base
}

func from(ctx context.Context) *zap.SugaredLogger {
	l := get()
	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(ctxKey{}).([]interface{}); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	from(ctx).Fatal(err)
}
