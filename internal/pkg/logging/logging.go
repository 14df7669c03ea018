// Package logging installs the process-wide slog logger backed by zap
package logging

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// Config selects level and encoding
type Config struct {
	Level  string
	Format string

	// Name is attached to every record as "logger"
	Name string
}

// New builds a zap logger and an slog logger writing through it. Call Sync on
// the zap logger before exit.
func New(cfg *Config) (*slog.Logger, *zap.Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil && cfg.Level != "" {
		return nil, nil, errors.InvalidArgumentf("unknown log level %q", cfg.Level)
	}
	if cfg.Level == "" {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build logger")
	}

	sl := slog.New(zapslog.NewHandler(logger.Core()))
	if cfg.Name != "" {
		sl = sl.With("logger", cfg.Name)
	}
	return sl, logger, nil
}

// Install makes the logger the slog default and returns a flush function
func Install(cfg *Config) (func(), error) {
	logger, zl, err := New(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return func() { _ = zl.Sync() }, nil
}
