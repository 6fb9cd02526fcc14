package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("nonsense"))
}

func TestInit_WithRotatingFile(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "api.%Y%m%d.log")

	lg, err := Init(Config{Level: "debug", File: pattern})
	require.NoError(t, err)

	lg.Info("hello")
	assert.True(t, lg.Core().Enabled(zapcore.DebugLevel))
}
