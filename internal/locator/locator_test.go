package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
)

func existing(paths ...string) func(string) bool {
	return func(p string) bool {
		for _, e := range paths {
			if e == p {
				return true
			}
		}
		return false
	}
}

func TestResolve_Shapes(t *testing.T) {
	r := &Resolver{Exists: existing("../examples", "org/repo")}

	tests := []struct {
		name      string
		raw       string
		subfolder string
		want      Source
	}{
		{
			name:      "existing local path",
			raw:       "../examples",
			subfolder: "tower/hello-world",
			want:      Source{Origin: LocalPath, Address: "../examples", Subfolder: "tower/hello-world"},
		},
		{
			name:      "gh shorthand",
			raw:       "gh:shuttle-hq/shuttle-examples",
			subfolder: "tower/hello-world",
			want:      Source{Origin: GitShorthand, Host: "github.com", Address: "shuttle-hq/shuttle-examples", Subfolder: "tower/hello-world"},
		},
		{
			name: "gl shorthand",
			raw:  "gl:group/project",
			want: Source{Origin: GitShorthand, Host: "gitlab.com", Address: "group/project"},
		},
		{
			name:      "full URL",
			raw:       "https://github.com/shuttle-hq/shuttle-examples",
			subfolder: "tower/hello-world",
			want:      Source{Origin: GitURL, Address: "https://github.com/shuttle-hq/shuttle-examples", Subfolder: "tower/hello-world"},
		},
		{
			name: "ssh URL without path",
			raw:  "ssh://git.example.com",
			want: Source{Origin: GitURL, Address: "ssh://git.example.com"},
		},
		{
			name: "ssh URL with user",
			raw:  "ssh://git@github.com/owner/repo.git",
			want: Source{Origin: GitURL, Address: "ssh://git@github.com/owner/repo.git"},
		},
		{
			name: "bare owner/repo",
			raw:  "shuttle-hq/shuttle-examples",
			want: Source{Origin: GitShorthand, Host: "github.com", Address: "shuttle-hq/shuttle-examples"},
		},
		{
			name: "local path wins over shorthand",
			raw:  "org/repo",
			want: Source{Origin: LocalPath, Address: "org/repo"},
		},
		{
			name:      "subfolder kept verbatim",
			raw:       "owner/repo",
			subfolder: "./x/y/",
			want:      Source{Origin: GitShorthand, Host: "github.com", Address: "owner/repo", Subfolder: "./x/y/"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  owner/repo\n",
			want: Source{Origin: GitShorthand, Host: "github.com", Address: "owner/repo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.raw, tt.subfolder)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	r := &Resolver{Exists: existing()}

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty", "", ErrEmptyLocator},
		{"whitespace", "   ", ErrEmptyLocator},
		{"free text", "not a valid anything", ErrUnrecognizedLocator},
		{"too many slashes", "a/b/c", ErrUnrecognizedLocator},
		{"shorthand prefix without repo", "gh:owner", ErrUnrecognizedLocator},
		{"shorthand prefix with extra path", "gh:owner/repo/sub", ErrUnrecognizedLocator},
		{"missing local relative path", "../examples", ErrUnrecognizedLocator},
		{"scheme without host", "https://", ErrUnrecognizedLocator},
		{"scp style", "git@github.com:owner/repo", ErrUnrecognizedLocator},
		{"windows drive path", `C:\templates\app`, ErrUnrecognizedLocator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.raw, "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
			assert.Equal(t, Source{}, got)
		})
	}
}

func TestResolve_DefaultExistsUsesFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tpl"), 0o755))

	got, err := NewResolver().Resolve(filepath.Join(dir, "tpl"), "")
	require.NoError(t, err)
	assert.Equal(t, LocalPath, got.Origin)
}

func TestTarget_EquivalentForms(t *testing.T) {
	r := &Resolver{Exists: existing()}

	forms := []string{
		"owner/repo",
		"gh:owner/repo",
		"https://github.com/owner/repo",
		"https://GitHub.com/owner/repo.git",
		"https://github.com/owner/repo/",
	}

	var targets []FetchTarget
	for _, raw := range forms {
		src, err := r.Resolve(raw, "x/y")
		require.NoError(t, err, raw)
		targets = append(targets, src.Target())
	}

	for i, target := range targets {
		assert.Equal(t, FetchTarget{Remote: "https://github.com/owner/repo", Subfolder: "x/y"}, target, forms[i])
	}
}

func TestTarget_DifferentHostsDiffer(t *testing.T) {
	r := &Resolver{Exists: existing()}

	gh, err := r.Resolve("gh:owner/repo", "")
	require.NoError(t, err)
	gl, err := r.Resolve("gl:owner/repo", "")
	require.NoError(t, err)

	assert.NotEqual(t, gh.Target(), gl.Target())
	assert.Equal(t, "https://gitlab.com/owner/repo", gl.Remote())
}

func TestCleanSubfolder(t *testing.T) {
	assert.Equal(t, "", CleanSubfolder(""))
	assert.Equal(t, "", CleanSubfolder("."))
	assert.Equal(t, "", CleanSubfolder("/"))
	assert.Equal(t, "x/y", CleanSubfolder("./x/y/"))
	assert.Equal(t, "x/y", CleanSubfolder("x\\y"))
	assert.Equal(t, "y", CleanSubfolder("x/../y"))
}

func TestCatalogued(t *testing.T) {
	upstream := Source{Origin: GitShorthand, Host: "github.com", Address: "shuttle-hq/shuttle-examples", Subfolder: "rocket/hello-world"}
	src := Catalogued("rocket", upstream)

	assert.Equal(t, CatalogName, src.Origin)
	assert.Equal(t, "rocket", src.Address)
	assert.Equal(t, "rocket/hello-world", src.Subfolder)
	assert.Equal(t, upstream, src.Fetchable())
	assert.Equal(t, upstream.Target(), src.Target())
	assert.Equal(t, "rocket", src.String())
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "owner/repo (subfolder x)", Source{Origin: GitShorthand, Host: "github.com", Address: "owner/repo", Subfolder: "x"}.String())
	assert.Equal(t, "gl:owner/repo", Source{Origin: GitShorthand, Host: "gitlab.com", Address: "owner/repo"}.String())
	assert.Equal(t, "../examples", Source{Origin: LocalPath, Address: "../examples"}.String())
}

func TestOrigin_String(t *testing.T) {
	assert.Equal(t, "local path", LocalPath.String())
	assert.Equal(t, "git shorthand", GitShorthand.String())
	assert.Equal(t, "git URL", GitURL.String())
	assert.Equal(t, "catalog", CatalogName.String())
	assert.Equal(t, "unknown", Origin(42).String())
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmptyLocator, ErrUnrecognizedLocator))
}
