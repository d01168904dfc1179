package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.Mutex
	logger   *zap.Logger
	exitFunc = os.Exit
)

// L returns the shared application logger, building a default one on first use.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = build(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	}
	return logger
}

// Configure replaces the shared logger with one using the given level and format.
func Configure(level string, format string) *zap.Logger {
	built := build(level, format)
	mu.Lock()
	previous := logger
	logger = built
	mu.Unlock()
	if previous != nil {
		_ = previous.Sync()
	}
	return built
}

// Replace swaps the shared logger; used by tests to capture output.
func Replace(next *zap.Logger) func() {
	mu.Lock()
	previous := logger
	logger = next
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = previous
		mu.Unlock()
	}
}

func build(level string, format string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "structured":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// stderr keeps stdout free for command output.
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), parseLevel(level))
	return zap.New(core)
}

func parseLevel(value string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Fatal logs the message at error level and exits with status 1.
func Fatal(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
	_ = L().Sync()
	exitFunc(1)
}
