package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/poll/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"POLL_BACKEND", "POLL_DATA_DIR", "POLL_THEME", "POLL_LOG_LEVEL", "POLL_LOG_FILE", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, rest, err := Parse([]string{"ls"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, []string{"ls"}, rest)
	assert.Equal(t, store.KindFile, cfg.Backend)
	assert.Equal(t, filepath.Join(home, ".poll"), cfg.DataDir)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_BACKEND", "sqlite")
	t.Setenv("POLL_DATA_DIR", "/tmp/polls")
	t.Setenv("POLL_THEME", "neon")
	t.Setenv("POLL_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "1")

	cfg, _, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, store.KindSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/polls", cfg.DataDir)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_BACKEND", "sqlite")

	cfg, rest, err := Parse([]string{"-backend", "memory", "-data", "/x", "-log-level", "error", "vote", "1", "2"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, store.KindMemory, cfg.Backend)
	assert.Equal(t, "/x", cfg.DataDir)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
	assert.Equal(t, []string{"vote", "1", "2"}, rest)
}

func TestParseRejectsBadValues(t *testing.T) {
	clearEnv(t)

	_, _, err := Parse([]string{"-backend", "redis"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = Parse([]string{"-log-level", "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = Parse([]string{"-theme", "rainbow"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = Parse([]string{"-nope"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("POLL_THEME=mono\n"), 0o600))
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("POLL_THEME"))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))
	t.Cleanup(func() { os.Unsetenv("POLL_THEME") })

	cfg, _, err := Parse([]string{"-data", dir}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
}

func TestLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.log")
	cfg := Config{LogLevel: slog.LevelInfo, LogFile: path}

	var stderr bytes.Buffer
	log, closeFn, err := cfg.Logger(&stderr)
	require.NoError(t, err)
	log.Info("hello", "k", 1)
	log.Debug("hidden")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=hello k=1")
	assert.NotContains(t, string(b), "hidden")
	assert.Empty(t, stderr.String())
}
