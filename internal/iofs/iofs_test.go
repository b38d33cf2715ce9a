package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// repeated calls must succeed
	for range 3 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "polcat"),
		filepath.Join(tmpDir, ".cache", "polcat"),
		filepath.Join(tmpDir, ".local", "share", "polcat", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	require.NoError(t, touchDir(newDir))
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, touchDir(newDir))

	// a file in the way cannot become a directory
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	err = touchDir(filepath.Join(file, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "polcat", "config.yaml")
	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	// existing file is not overwritten
	custom := "# Custom config\ningest:\n  format: ncsn\n"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	err := EnsureConfigFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConfigYAML(t *testing.T) {
	var data map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &data))
	for _, v := range []string{"ingest", "export", "log", "jobs_number"} {
		assert.Contains(t, data, v)
	}

	ingest, ok := data["ingest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "skhash", ingest["format"])
	assert.Equal(t, 0.5, ingest["p_weight_e"])
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "tables")
	require.NoError(t, EnsureOutputDir(dir))
	assert.DirExists(t, dir)
}
