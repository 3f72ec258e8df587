package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFileFindsRelativeToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Solver]\n"), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	resolved, err := ResolveFile("config.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(path), resolved)
}

func TestResolveFileAbsoluteMustExist(t *testing.T) {
	_, err := ResolveFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
