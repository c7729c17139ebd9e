package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		debugOn   bool
		infoOn    bool
		expectErr bool
	}{
		{name: "dev debug", env: "dev", level: "debug", debugOn: true, infoOn: true},
		{name: "prod info", env: "prod", level: "info", debugOn: false, infoOn: true},
		{name: "warn only", env: "production", level: "warn", debugOn: false, infoOn: false},
		{name: "bad level", env: "dev", level: "loud", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.env, tt.level)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			core := log.Desugar().Core()
			assert.Equal(t, tt.debugOn, core.Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.infoOn, core.Enabled(zapcore.InfoLevel))
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
