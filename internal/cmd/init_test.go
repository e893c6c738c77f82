package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesStarterRuleset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.rules")

	out, err := execute("init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Starter rule file written to "+path)

	// The written file validates cleanly
	_, err = execute("validate", path)
	assert.NoError(t, err)
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.rules")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))

	_, err := execute("init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestInitDefaultPath(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute("init")
	require.NoError(t, err)

	_, err = os.Stat("sweep.rules")
	assert.NoError(t, err)
}
