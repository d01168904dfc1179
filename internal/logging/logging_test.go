package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevelMappings(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}

func TestLoggerSingleton(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	first := L()
	second := L()
	assert.Same(t, first, second)
}

func TestConfigureHonoursLevel(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	configured := Configure("error", "json")
	assert.False(t, configured.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, configured.Core().Enabled(zapcore.ErrorLevel))
	assert.Same(t, configured, L())
}

func TestFatalInvokesExitFunction(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	var exitCode int
	exitFunc = func(code int) {
		exitCode = code
	}
	defer func() { exitFunc = os.Exit }()

	Fatal("boom", zap.String("key", "value"))

	require.Equal(t, 1, exitCode)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "boom", logs.All()[0].Message)
}
