package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, level := newLogger(false)
	assert.Equal(t, slog.LevelInfo, level.Level())
	assert.Same(t, logger.Handler(), slog.Default().Handler())

	level.Set(slog.LevelWarn)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	_, level = newLogger(true)
	assert.Equal(t, slog.LevelDebug, level.Level())
}

func TestRun_BadConfigReturnsError(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = [\n"), 0o644))

	err := run(options{configPath: path})
	assert.Error(t, err)
}
