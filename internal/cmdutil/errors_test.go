package cmdutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/generate"
	"github.com/shuttle-hq/shuttle-cli/internal/project"
	"github.com/shuttle-hq/shuttle-cli/internal/verify"
)

func rocketRequest(t *testing.T) *project.InitRequest {
	t.Helper()
	entry, ok := catalog.Default().Lookup("rocket")
	require.True(t, ok)
	req, err := project.NewInitRequest("my-project", t.TempDir(), entry.Source, &entry)
	require.NoError(t, err)
	return req
}

func TestGenerationError(t *testing.T) {
	req := rocketRequest(t)

	tests := []struct {
		name     string
		err      error
		wantType string
		wantCode int
	}{
		{
			name:     "conflict",
			err:      fmt.Errorf("%w: %s is not empty", generate.ErrDestinationConflict, req.Destination),
			wantType: "destination conflict",
			wantCode: oerrors.ExitConflict,
		},
		{
			name:     "source unavailable",
			err:      fmt.Errorf("%w: clone failed", generate.ErrSourceUnavailable),
			wantType: "template source unavailable",
			wantCode: oerrors.ExitConnectivityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GenerationError(tt.err, req)

			var detail *oerrors.DetailError
			require.True(t, errors.As(err, &detail))
			assert.Equal(t, tt.wantType, detail.Type)
			assert.NotEmpty(t, detail.Hint)
			assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
		})
	}

	t.Run("unavailable names the remote", func(t *testing.T) {
		err := GenerationError(generate.ErrSourceUnavailable, req)
		var detail *oerrors.DetailError
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, "https://github.com/shuttle-hq/shuttle-examples", detail.Context["source"])
	})

	t.Run("other errors pass through", func(t *testing.T) {
		plain := errors.New("disk full")
		assert.Same(t, plain, GenerationError(plain, req))
	})
}

func TestVerificationError(t *testing.T) {
	req := rocketRequest(t)
	verr := &verify.Error{Kind: verify.ErrMissingFile, File: "src/main.rs"}

	err := VerificationError(verr, req)

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "generated project is invalid", detail.Type)
	assert.Equal(t, filepath.Join(req.Destination, "src", "main.rs"), detail.Location)
	assert.True(t, errors.Is(err, verify.ErrTemplateDefect))
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}
