package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchmaker.log")

	log, err := New(Config{Level: "debug", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	log.Info("ranked recipes", zap.Int("count", 8))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"ranked recipes"`)
	assert.Contains(t, string(data), `"count":8`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "verbose", Format: "console", OutputPaths: []string{filepath.Join(t.TempDir(), "out.log")}})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
