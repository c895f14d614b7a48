package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, msg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Using default/environment configuration.", msg)
	assert.Equal(t, "both", cfg.Strip.Mode)
	assert.Equal(t, "prefix", cfg.Strip.LogMatch)
	assert.False(t, cfg.Strip.DryRun)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "8779", cfg.Server.Port)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "history.db", filepath.Base(cfg.Database.Path))
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "stripper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
strip:
  mode: comments
  log_match: strict
walk:
  skip_dirs: [vendor, dist]
  gitignore: true
  include: ["src/**/*.js"]
history:
  enabled: false
logging:
  level: debug
`), 0o644))

	t.Setenv("STRIPPER_SERVER_PORT", "9001")
	t.Setenv("STRIPPER_STRIP_DRY_RUN", "true")

	cfg, msg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, msg, cfgPath)
	assert.Equal(t, "comments", cfg.Strip.Mode)
	assert.Equal(t, "strict", cfg.Strip.LogMatch)
	assert.True(t, cfg.Strip.DryRun)
	assert.Equal(t, []string{"vendor", "dist"}, cfg.Walk.SkipDirs)
	assert.True(t, cfg.Walk.Gitignore)
	assert.Equal(t, []string{"src/**/*.js"}, cfg.Walk.Include)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "9001", cfg.Server.Port)
}

func TestLoadBrokenFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("strip: [unclosed"), 0o644))

	_, _, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandTilde("~/x/history.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "history.db"), got)

	got, err = ExpandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
