package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetLevel sends console formatted logs at level l and above to w.
func SetLevel(w io.Writer, l zapcore.Level) {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), l)
	logger = zap.New(core)
}

func levelOf(verbose int) zapcore.Level {
	switch {
	case verbose >= 2:
		return zapcore.DebugLevel
	case verbose >= 1:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

type kvKey struct{}

// CtxAddKvs appends key/value pairs to the fields LoggerOf attaches. Values
// are logged as strings, a trailing key without a value is dropped.
func CtxAddKvs(ctx context.Context, kvs ...interface{}) context.Context {
	if len(kvs) < 2 {
		return ctx
	}

	previous := fieldsOf(ctx)
	fields := make([]zap.Field, len(previous), len(previous)+len(kvs)/2)
	copy(fields, previous)
	for i := 0; i+1 < len(kvs); i += 2 {
		fields = append(fields, zap.String(fmt.Sprint(kvs[i]), fmt.Sprint(kvs[i+1])))
	}
	return context.WithValue(ctx, kvKey{}, fields)
}

func fieldsOf(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(kvKey{}).([]zap.Field)
	return fields
}

func LoggerOf(ctx context.Context) *zap.Logger {
	return logger.With(fieldsOf(ctx)...)
}
