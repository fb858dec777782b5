// Package logging builds the process logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/masmgr/gitsql/config"
)

// New builds a zap logger writing to stderr. Development mode uses the
// console encoder; otherwise output is JSON. An empty level means warn.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	lc := zap.NewProductionConfig()
	if cfg.Development {
		lc = zap.NewDevelopmentConfig()
	}
	lc.Level = atom
	lc.OutputPaths = []string{"stderr"}
	lc.ErrorOutputPaths = []string{"stderr"}

	return lc.Build()
}
