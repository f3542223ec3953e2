package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields represents structured log fields
type Fields map[string]any

// Logger is the structured logging interface used across the monitor.
// Implementations must be safe for use from a single measurement session.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// zapLogger adapts a zap.Logger to the Logger interface
type zapLogger struct {
	base *zap.Logger
}

// NewDefaultLogger creates a production-ready logger writing JSON to stderr
// at info level
func NewDefaultLogger() Logger {
	return NewLogger("info")
}

// NewLogger creates a logger at the given level (debug, info, warn, error).
// Unknown levels fall back to info.
func NewLogger(level string) Logger {
	zapLevel := zapcore.InfoLevel
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig cannot fail to build with these options,
		// but fall back to a no-op logger rather than panic
		base = zap.NewNop()
	}

	return &zapLogger{base: base}
}

func (l *zapLogger) Debug(msg string, fields ...Fields) {
	l.base.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Fields) {
	l.base.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Fields) {
	l.base.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(err error, msg string, fields ...Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.base.Error(msg, zf...)
}

func (l *zapLogger) WithFields(fields Fields) Logger {
	return &zapLogger{base: l.base.With(zapFields([]Fields{fields})...)}
}

// zapFields flattens variadic Fields into zap fields
func zapFields(fields []Fields) []zap.Field {
	var zf []zap.Field
	for _, f := range fields {
		for k, v := range f {
			zf = append(zf, zap.Any(k, v))
		}
	}
	return zf
}

var (
	defaultLogger Logger = NewDefaultLogger()
	defaultMu     sync.RWMutex
)

// SetDefaultLogger replaces the package-level default logger
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if logger != nil {
		defaultLogger = logger
	}
}

// Default returns the package-level default logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// WithFields returns the default logger with pre-attached fields
func WithFields(fields Fields) Logger {
	return Default().WithFields(fields)
}

// Debug logs at debug level on the default logger
func Debug(msg string, fields ...Fields) {
	Default().Debug(msg, fields...)
}

// Info logs at info level on the default logger
func Info(msg string, fields ...Fields) {
	Default().Info(msg, fields...)
}

// Error logs an error on the default logger
func Error(err error, msg string, fields ...Fields) {
	Default().Error(err, msg, fields...)
}
