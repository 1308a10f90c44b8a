package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/durok/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "durok.log")

	logger, closer, err := New(config.LogConfig{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("timer paused", "minutes", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "timer paused")
	assert.Contains(t, string(data), "minutes=3")
}

func TestNew_NoFileDiscards(t *testing.T) {
	logger, closer, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())
}
