package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger
type Logger struct {
	*zap.Logger
}

// Option customises the zap logger built by New.
type Option func(zapcore.Core) zapcore.Core

// New creates a new logger instance. encoding is either "console" or "json".
func New(level, encoding string, opts ...Option) (*Logger, error) {
	var config zap.Config

	if encoding == "console" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.TimeKey = "ts"
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.MessageKey = "msg"
		config.EncoderConfig.CallerKey = "caller"
		config.EncoderConfig.StacktraceKey = "stacktrace"
		config.EncoderConfig.NameKey = "logger"
	}

	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	config.Level = logLevel

	zapOpts := []zap.Option{zap.AddCallerSkip(1)}
	for _, opt := range opts {
		zapOpts = append(zapOpts, zap.WrapCore(opt))
	}

	logger, err := config.Build(zapOpts...)
	if err != nil {
		return nil, err
	}

	return &Logger{logger}, nil
}

// NewNop returns a logger that discards everything. Used by tests and the one-shot CLI when quiet.
func NewNop() *Logger {
	return &Logger{zap.NewNop()}
}

// With creates a child logger with the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l.Logger.With(fields...)}
}

// FromContext retrieves a logger from context if it exists, or returns the default logger
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	loggerFromCtx, ok := ctx.Value(loggerContextKey).(*Logger)
	if !ok || loggerFromCtx == nil {
		return l
	}

	return loggerFromCtx
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.Logger.Debug(msg, fields...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.FromContext(ctx).Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.Logger.Info(msg, fields...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.FromContext(ctx).Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.Logger.Warn(msg, fields...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.FromContext(ctx).Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.Logger.Error(msg, fields...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.FromContext(ctx).Error(msg, fields...)
}

// ErrorContextWithAlert logs an error and flags the entry for the alert core.
func (l *Logger) ErrorContextWithAlert(ctx context.Context, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Bool(alertFieldKey, true))
	l.FromContext(ctx).Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.Logger.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

// Field creates a zap.Field
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

func FloatField(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

func DurationField(key string, value interface{ Seconds() float64 }) zap.Field {
	return zap.Float64(key+"_seconds", value.Seconds())
}

func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

type contextKey string

const loggerContextKey contextKey = "logger"

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}
