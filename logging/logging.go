package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Init builds the process-wide logger. Call once from main before
// anything else logs.
func Init() *zap.Logger {
	config := zap.NewProductionConfig()
	if os.Getenv("LOG_LEVEL") == "debug" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
	return logger
}

func L() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}
