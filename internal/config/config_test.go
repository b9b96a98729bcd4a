package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev.cityscape.app", cfg.AppID)
	assert.Equal(t, "Cityscape", cfg.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CITYSCAPE_TITLE", "Night City")
	t.Setenv("CITYSCAPE_WINDOW_WIDTH", "1920")
	t.Setenv("CITYSCAPE_LOG_LEVEL", "debug")
	t.Setenv("CITYSCAPE_LOG_JSON", "true")
	t.Setenv("CITYSCAPE_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Night City", cfg.Title)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 3*time.Second, cfg.Shutdown.Timeout)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("title: From File\nwindow:\n  height: 600\nlog:\n  file: /tmp/city.log\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cityscape.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "From File", cfg.Title)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "/tmp/city.log", cfg.LogFilePath())
}

func TestEnvironmentBeatsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cityscape.yaml"), []byte("title: From File\n"), 0o644))
	t.Setenv("CITYSCAPE_TITLE", "From Env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.NoError(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cityscape.yaml"), []byte("title: [unterminated\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("CITYSCAPE_WINDOW_HEIGHT", "0")
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogFilePathDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	path := cfg.LogFilePath()
	assert.Equal(t, "cityscape.log", filepath.Base(path))
	assert.Equal(t, "cityscape", filepath.Base(filepath.Dir(path)))
}
