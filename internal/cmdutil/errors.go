package cmdutil

import (
	"errors"
	"path/filepath"

	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/generate"
	"github.com/shuttle-hq/shuttle-cli/internal/project"
	"github.com/shuttle-hq/shuttle-cli/internal/verify"
)

// GenerationError attaches user guidance to generator failures. Errors it
// does not recognize are returned unchanged.
func GenerationError(err error, req *project.InitRequest) error {
	switch {
	case errors.Is(err, generate.ErrDestinationConflict):
		return oerrors.NewConflictError(err.Error(), req.Destination,
			"Choose an empty directory or pass --force to generate into it anyway.", err)
	case errors.Is(err, generate.ErrSourceUnavailable):
		return oerrors.NewConnectivityError(err.Error(),
			map[string]string{"source": req.Template.Fetchable().Remote()},
			"Check the locator, the subfolder, and your network connection, then run the command again.", err)
	}
	return err
}

// VerificationError reports a generated project that failed validation. The
// location points at the offending file inside the destination.
func VerificationError(err error, req *project.InitRequest) error {
	var verr *verify.Error
	file := ""
	if errors.As(err, &verr) {
		file = filepath.Join(req.Destination, filepath.FromSlash(verr.File))
	}
	return &oerrors.DetailError{
		Type:     "generated project is invalid",
		Message:  err.Error(),
		Location: file,
		Context:  map[string]string{"template": req.Template.String()},
		Hint:     "The template does not produce a valid Shuttle project; report it to its maintainers.",
		Cause:    err,
	}
}
