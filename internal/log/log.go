// Package log provides the process-wide diagnostic logger. It initializes
// lazily on first use and is safe for concurrent access; the level can be
// raised to debug at any time without touching the numerical core.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once  sync.Once
	log   *zap.SugaredLogger
	level zap.AtomicLevel
)

func get() *zap.SugaredLogger {
	once.Do(func() {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		logger, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			logger = zap.NewNop()
		}
		log = logger.Sugar()
	})
	return log
}

// SetDebug toggles debug-level output process-wide.
func SetDebug(debug bool) {
	get()
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Sync flushes buffered entries; call it on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func Debugf(template string, args ...interface{}) { get().Debugf(template, args...) }

func Debugw(msg string, keysAndValues ...interface{}) { get().Debugw(msg, keysAndValues...) }

func Infof(template string, args ...interface{}) { get().Infof(template, args...) }

func Infow(msg string, keysAndValues ...interface{}) { get().Infow(msg, keysAndValues...) }

func Warnf(template string, args ...interface{}) { get().Warnf(template, args...) }

func Errorf(template string, args ...interface{}) { get().Errorf(template, args...) }
