package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttle-hq/shuttle-cli/internal/config"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/testutil"
)

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestConfigInit_CreatesFile(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)

	configFile := filepath.Join(home, ".shuttle", "config.yaml")
	assert.FileExists(t, configFile)
	assert.Contains(t, out, "Configuration initialized")

	content := testutil.ReadFile(t, configFile)
	assert.Contains(t, content, "apiUrl: "+config.DefaultAPIURL)
	assert.Contains(t, content, "timeout: 2m0s")
	assert.NotContains(t, content, "apiKey")
}

func TestConfigInit_SecurePermissions(t *testing.T) {
	home := isolate(t)

	_, err := execute(t, "", "config", "init")
	require.NoError(t, err)

	dirInfo, err := os.Stat(filepath.Join(home, ".shuttle"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(filepath.Join(home, ".shuttle", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fileInfo.Mode().Perm())
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	home := isolate(t)
	configFile := filepath.Join(home, ".shuttle", "config.yaml")
	testutil.WriteTree(t, home, map[string]string{".shuttle/config.yaml": "apiUrl: https://example.com\n"})

	_, err := execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	assert.Equal(t, "apiUrl: https://example.com\n", testutil.ReadFile(t, configFile))

	_, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, configFile), config.DefaultAPIURL)
}

func TestConfigInit_CustomPath(t *testing.T) {
	isolate(t)
	configFile := filepath.Join(t.TempDir(), "nested", "shuttle.yaml")

	_, err := execute(t, "", "--config", configFile, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, configFile)
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode int
	}{
		{"valid", "apiUrl: https://api.example.com\nfetch:\n  timeout: 30s\n", oerrors.ExitSuccess},
		{"empty file", "", oerrors.ExitSuccess},
		{"bad url", "apiUrl: not a url\n", oerrors.ExitValidationError},
		{"negative timeout", "fetch:\n  timeout: -5s\n", oerrors.ExitValidationError},
		{"bad yaml", "apiUrl: [\n", oerrors.ExitValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configFile, []byte(tt.content), 0o600))

			out, err := execute(t, "", "--config", configFile, "config", "vet")
			assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
			if tt.wantCode == oerrors.ExitSuccess {
				assert.Contains(t, out, "Config values valid")
			}
		})
	}
}

func TestConfigVet_Missing(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "shuttle config init")
}

func TestConfigInitThenVet(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "config", "init")
	require.NoError(t, err)

	out, err := execute(t, "", "config", "vet")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file found")
}
