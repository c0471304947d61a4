// Package generate materializes a project from a resolved template source.
package generate

import (
	"io/fs"

	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/locator"
)

// Generation errors.
var (
	// ErrSourceUnavailable is returned when the template cannot be fetched:
	// unreachable remote, bad path, missing subfolder. It wraps
	// errors.ErrConnectivity.
	ErrSourceUnavailable = oerrors.Wrap(oerrors.ErrConnectivity, "template source unavailable")

	// ErrDestinationConflict is returned when the destination holds files and
	// Force is not set. It wraps errors.ErrConflict.
	ErrDestinationConflict = oerrors.Wrap(oerrors.ErrConflict, "destination is not empty")
)

// TemplateData holds the values substituted into template files.
type TemplateData struct {
	// ProjectName is the package name (e.g., "my-project").
	ProjectName string

	// CrateName is ProjectName as a source identifier (e.g., "my_project").
	CrateName string
}

// TemplateFile is one rendered file.
type TemplateFile struct {
	// TargetPath is the slash-separated path relative to the project root.
	TargetPath string

	// Content is the rendered content.
	Content []byte

	// Mode is the permission of the source file.
	Mode fs.FileMode
}

// Result describes a generated project.
type Result struct {
	// Files lists the created files, slash-separated, in walk order.
	Files []string

	// Destination is the project directory.
	Destination string

	// Source is the template that was used.
	Source locator.Source

	// ManifestUpdated is true when the package name was written into Cargo.toml.
	ManifestUpdated bool
}
