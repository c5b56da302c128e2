// Package logger builds the service's zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configure New.
type Options struct {
	// Debug lowers the default level to debug and turns sampling off.
	Debug bool
	// Level, when set, overrides the default level ("debug", "info", "warn", "error").
	Level string
	// Season is attached to every entry so logs of two seasons stay apart.
	Season int
}

// New builds a JSON zap logger tagged with the service name and season.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.Debug {
		cfg.Sampling = nil
	}

	fields := map[string]any{"service": "gridpredict"}
	if opts.Season != 0 {
		fields["season"] = opts.Season
	}
	cfg.InitialFields = fields

	return cfg.Build()
}
