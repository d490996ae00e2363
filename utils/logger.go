package utils

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu  sync.RWMutex
	logger *zap.SugaredLogger
)

// InitLogger builds the process logger. level is a zap level name; an
// unknown level falls back to info.
func InitLogger(level string) error {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logMu.Lock()
	logger = l.Sugar()
	logMu.Unlock()
	return nil
}

// Logger returns the process logger, or a no-op logger before InitLogger.
func Logger() *zap.SugaredLogger {
	logMu.RLock()
	l := logger
	logMu.RUnlock()
	if l == nil {
		return zap.NewNop().Sugar()
	}
	return l
}

func SyncLogger() {
	_ = Logger().Sync()
}
