package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WorkDuration != 25 {
		t.Errorf("WorkDuration = %d, want 25", cfg.WorkDuration)
	}
	if cfg.BreakDuration != 5 {
		t.Errorf("BreakDuration = %d, want 5", cfg.BreakDuration)
	}
	if cfg.TargetCycles != 4 {
		t.Errorf("TargetCycles = %d, want 4", cfg.TargetCycles)
	}
	if cfg.Theme != "Doro" {
		t.Errorf("Theme = %q, want Doro", cfg.Theme)
	}
	if cfg.CustomMP3Path != "" {
		t.Errorf("CustomMP3Path = %q, want empty", cfg.CustomMP3Path)
	}
}

func TestLoadFrom_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
	assert.Equal(t, 25, cfg.WorkDuration)
	assert.Equal(t, path, cfg.Path())
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	cfg.WorkDuration = 50
	cfg.BreakDuration = 10
	cfg.TargetCycles = 6
	cfg.Theme = "Cyberpunk"
	cfg.FontFamily = "Slim"
	cfg.CustomMP3Path = "/tmp/bell.mp3"
	cfg.Notifications.Enabled = false
	cfg.Storage.DataDir = dir
	require.NoError(t, Save(cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 50, loaded.WorkDuration)
	assert.Equal(t, 10, loaded.BreakDuration)
	assert.Equal(t, 6, loaded.TargetCycles)
	assert.Equal(t, "Cyberpunk", loaded.Theme)
	assert.Equal(t, "Slim", loaded.FontFamily)
	assert.Equal(t, "/tmp/bell.mp3", loaded.CustomMP3Path)
	assert.False(t, loaded.Notifications.Enabled)
	assert.Equal(t, dir, loaded.Storage.DataDir)
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `work_duration = 500
break_duration = 0
target_cycles = 99
theme = "Neon Nights"
font_family = "Comic Sans"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.WorkDuration)
	assert.Equal(t, 5, cfg.BreakDuration)
	assert.Equal(t, 4, cfg.TargetCycles)
	assert.Equal(t, "Doro", cfg.Theme)
	assert.Equal(t, "Block", cfg.FontFamily)
}

func TestCycleConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cc := cfg.CycleConfig()
	cc.WorkMinutes = 30
	cfg.ApplyCycleConfig(cc)
	assert.Equal(t, 30, cfg.WorkDuration)
	assert.NoError(t, cfg.CycleConfig().Validate())
}

func TestGetDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "doro.db"), GetDBPath(cfg))
	assert.Equal(t, filepath.Join("/data", "doro.log"), GetLogPath(cfg))
}
