// Package logger exposes the process-wide sugared zap logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	global *zap.SugaredLogger
	once   sync.Once
)

// Init builds the shared logger once; later calls are no-ops. The
// "production" environment gets the JSON encoder at info level, anything
// else the console encoder with debug enabled.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		global = base.Sugar()
	})
}

// Get returns the shared logger. When Init was never called it falls back
// to a development logger, which lets tests log without any setup.
func Get() *zap.SugaredLogger {
	if global == nil {
		Init("development")
	}
	return global
}

// Sync flushes buffered entries on shutdown.
func Sync() {
	if global == nil {
		return
	}
	_ = global.Sync()
}
