package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
rootDir: /tmp/artifacts
plugins:
  screenshot:
    mode: failing
  video:
    mode: none
  log:
    mode: all
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/artifacts", cfg.RootDir)
	assert.Equal(t, ModeFailing, cfg.PluginMode("screenshot"))
	assert.Equal(t, ModeAll, cfg.PluginMode("log"))
	assert.True(t, cfg.PluginEnabled("screenshot"))
	assert.False(t, cfg.PluginEnabled("video"))
	assert.False(t, cfg.PluginEnabled("unknown"))
}

func TestLoad_DefaultsApply(t *testing.T) {
	path := writeConfig(t, `plugins: {screenshot: {mode: all}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "artifacts", cfg.RootDir)
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, `
plugins:
  screenshot:
    mode: sometimes
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "sometimes"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_ValidateEmptyRoot(t *testing.T) {
	cfg := Config{RootDir: ""}
	assert.Error(t, cfg.Validate())
}
