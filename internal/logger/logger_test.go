package logger

import (
	"testing"

	"saathi/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	assert.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	assert.NoError(t, Initialize(config.LoggerConfig{Env: "development"}))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}
