// Package logging builds the zap logger used by the CLI and the store.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/config"
)

// New returns a logger for cfg. Format "json" uses zap's production encoder;
// anything else gets the development console encoder. Both write to stderr.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q: want json or console", cfg.Format)
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zc.Level = lvl

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
