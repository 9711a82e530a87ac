package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global       *zap.SugaredLogger
	defaultLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	global = New(defaultLevel)
}

// New creates a console logger writing to stderr. Operator-facing
// pipeline output goes to stdout through the ui package; the logger
// carries progress and diagnostics only.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}

	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)

	return zap.New(core, options...).Sugar()
}

// ParseLevel converts a string such as "debug" or "warn" to a zap level.
// The second return value reports whether the input was recognized.
func ParseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// SetLevel adjusts the level of the package logger.
func SetLevel(level zapcore.Level) {
	defaultLevel.SetLevel(level)
}

// L returns the package logger.
func L() *zap.SugaredLogger {
	return global
}

// Debugf writes a formatted debug message.
func Debugf(format string, args ...any) {
	global.Debugf(format, args...)
}

// Infof writes a formatted info message.
func Infof(format string, args ...any) {
	global.Infof(format, args...)
}

// Warnf writes a formatted warning message.
func Warnf(format string, args ...any) {
	global.Warnf(format, args...)
}

// Errorf writes a formatted error message.
func Errorf(format string, args ...any) {
	global.Errorf(format, args...)
}
