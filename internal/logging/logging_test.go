package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.LoggingConfig
		debug  bool
		wantOK bool
	}{
		{"defaults", config.LoggingConfig{}, false, true},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{"json warn", config.LoggingConfig{Level: "warn", Format: "JSON"}, false, true},
		{"bad level", config.LoggingConfig{Level: "loud"}, false, false},
		{"bad format", config.LoggingConfig{Format: "xml"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if !tt.wantOK {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
		})
	}
}
