package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Workers)
	assert.Nil(t, cfg.Defaults.Quiet)
	assert.Nil(t, cfg.Defaults.NoProgress)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mircp"), 0755))
	content := "[defaults]\nworkers = 8\nquiet = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mircp", "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.Workers)
	assert.Equal(t, 8, *cfg.Defaults.Workers)
	require.NotNil(t, cfg.Defaults.Quiet)
	assert.True(t, *cfg.Defaults.Quiet)
	assert.Nil(t, cfg.Defaults.NoProgress)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mircp"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mircp", "config.toml"), []byte("not [valid"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "mircp", "config.toml"), Path())
}
