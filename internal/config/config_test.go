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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.EqualValues(t, 0, cfg.MaxFileSize)
	assert.True(t, cfg.History.Enabled)
	assert.NotEmpty(t, cfg.History.DBPath)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
verbose: true
exclude_dirs:
  - .git
  - node_modules
max_file_size: 1048576
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.ExcludeDirs)
	assert.EqualValues(t, 1048576, cfg.MaxFileSize)
	// Untouched section keeps defaults
	assert.True(t, cfg.History.Enabled)
}

func TestLoadConfigHistorySection(t *testing.T) {
	path := writeConfig(t, `
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.History.Enabled)
	// db_path untouched, keeps the default
	assert.Equal(t, DefaultConfig().History.DBPath, cfg.History.DBPath)
}

func TestLoadConfigHistoryDBPathOnly(t *testing.T) {
	path := writeConfig(t, `
history:
  db_path: /var/lib/sweep/history.db
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.History.Enabled, "setting db_path alone must not disable history")
	assert.Equal(t, "/var/lib/sweep/history.db", cfg.History.DBPath)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "verbose: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".sweep"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".sweep", "config.yaml"),
		[]byte("verbose: true\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}
