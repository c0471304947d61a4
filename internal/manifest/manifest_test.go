package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rocketManifest = `[package]
name = "hello-world"
version = "0.1.0"
edition = "2021"

[dependencies]
rocket = "0.5.0"
shuttle-rocket = "0.47.0"
shuttle-runtime = "0.47.0"
tokio = "1.26.0"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(rocketManifest))
	require.NoError(t, err)

	assert.Equal(t, "hello-world", m.Name())
	assert.Equal(t, "2021", m.Package.Edition)
	assert.True(t, m.HasDependency(RuntimeDependency))
	assert.True(t, m.HasDependency("shuttle-rocket"))
	assert.False(t, m.HasDependency("shuttle-axum"))
	assert.Equal(t, []string{"rocket", "shuttle-rocket", "shuttle-runtime", "tokio"}, m.DependencyNames())
}

func TestParse_WorkspaceDependencies(t *testing.T) {
	m, err := Parse([]byte(`[workspace]
members = ["api", "worker"]

[workspace.dependencies]
shuttle-runtime = "0.47.0"
`))
	require.NoError(t, err)

	assert.Empty(t, m.Name())
	assert.True(t, m.HasDependency(RuntimeDependency))
	assert.Equal(t, []string{"api", "worker"}, m.Workspace.Members)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("[package\nname = "))
	assert.Error(t, err)
}

func TestSetPackageName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{
			name:      "replaces existing name",
			input:     rocketManifest,
			want:      `name = "my-project"`,
			wantFound: true,
		},
		{
			name:      "keeps indentation and CRLF",
			input:     "[package]\r\n  name = \"x\"\r\nversion = \"0.1.0\"\r\n",
			want:      "[package]\r\n  name = \"my-project\"\r\nversion = \"0.1.0\"\r\n",
			wantFound: true,
		},
		{
			name:      "adds missing name",
			input:     "[package]\nversion = \"0.1.0\"\n\n[dependencies]\n",
			want:      "[package]\nname = \"my-project\"\nversion = \"0.1.0\"\n",
			wantFound: true,
		},
		{
			name:      "ignores name keys of other tables",
			input:     "[[bin]]\nname = \"server\"\n\n[package]\nname = \"x\"\n",
			want:      "[[bin]]\nname = \"server\"\n\n[package]\nname = \"my-project\"\n",
			wantFound: true,
		},
		{
			name:      "virtual manifest is left alone",
			input:     "[workspace]\nmembers = []\n",
			want:      "[workspace]\nmembers = []\n",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, found, err := SetPackageName([]byte(tt.input), "my-project")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Contains(t, string(out), tt.want)
		})
	}
}

func TestSetPackageName_PreservesRest(t *testing.T) {
	out, _, err := SetPackageName([]byte(rocketManifest), "my-project")
	require.NoError(t, err)

	m, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "my-project", m.Name())
	assert.Equal(t, "0.1.0", m.Package.Version)
	assert.True(t, m.HasDependency("shuttle-rocket"))
}

func TestSetPackageName_RejectsInvalidName(t *testing.T) {
	_, _, err := SetPackageName([]byte(rocketManifest), "My Project")
	assert.Error(t, err)
}
