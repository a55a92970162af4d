// Package logger provides a process-wide zap logger configured once at startup.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	// Config describes how the global logger should be built.
	Config struct {
		LogFile   string // path to the log file, empty means stdout only
		LogLevel  string // debug, info, warn or error
		AppName   string // added to every entry as the "app" field
		AddCaller bool   // annotate entries with the calling file:line
	}

	// Logger wraps zap.Logger so that packages depend on this package
	// instead of on zap directly.
	Logger struct {
		*zap.Logger
	}
)

var (
	global *Logger
	once   sync.Once
)

// Init builds the global logger from cfg. The first call wins; subsequent
// calls are no-ops so tests can call Init freely.
func Init(cfg Config) error {
	var initErr error

	once.Do(func() {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zapcore.InfoLevel
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderCfg),
				zapcore.Lock(os.Stdout),
				level,
			),
		}

		if cfg.LogFile != "" {
			file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				initErr = err
				return
			}

			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderCfg),
				zapcore.Lock(file),
				level,
			))
		}

		opts := []zap.Option{
			zap.Fields(zap.String("app", cfg.AppName)),
		}
		if cfg.AddCaller {
			opts = append(opts, zap.AddCaller())
		}

		global = &Logger{zap.New(zapcore.NewTee(cores...), opts...)}
	})

	return initErr
}

// Get returns the global logger. If Init was never called a no-op
// logger is returned so library code never has to nil-check.
func Get() *Logger {
	if global == nil {
		return &Logger{zap.NewNop()}
	}
	return global
}

// Sync flushes buffered log entries. Call it on shutdown.
func Sync() error {
	if global == nil {
		return nil
	}
	return global.Logger.Sync()
}
