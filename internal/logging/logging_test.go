package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/masmgr/gitsql/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		expected zapcore.Level
	}{
		{name: "Default", cfg: config.LogConfig{}, expected: zapcore.WarnLevel},
		{name: "Debug", cfg: config.LogConfig{Level: "debug"}, expected: zapcore.DebugLevel},
		{name: "Error development", cfg: config.LogConfig{Level: "error", Development: true}, expected: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.expected) {
				t.Errorf("level %s should be enabled", tt.expected)
			}
			if tt.expected > zapcore.DebugLevel && logger.Core().Enabled(tt.expected-1) {
				t.Errorf("level %s should be disabled", tt.expected-1)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("New() expected error for unknown level")
	}
}
