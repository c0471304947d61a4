package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
apiUrl: http://localhost:8001
apiKey: dh9z58jttoes3qvt
log:
  timestamps: false
git:
  binary: /usr/local/bin/git
fetch:
  timeout: 30s
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8001", cfg.APIURL)
		assert.Equal(t, "dh9z58jttoes3qvt", cfg.APIKey)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
		assert.Equal(t, "/usr/local/bin/git", cfg.Git.Binary)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Empty(t, cfg.APIURL)
		assert.Empty(t, cfg.APIKey)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("SHUTTLE_API_URL", "http://env.invalid")

		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("apiUrl: http://file.invalid\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "http://env.invalid", cfg.APIURL)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("apiUrl: [unterminated"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := NewLoader().LoadWithDefaults(configFile)

	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "git", cfg.Git.Binary)
}

func TestConfigFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(present, []byte(""), 0o644))

	ok, err := ConfigFileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(tmpDir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
