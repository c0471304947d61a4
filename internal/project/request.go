// Package project defines the fully resolved input of a project
// initialization.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
)

// InitRequest is everything needed to generate one project. Build it with
// NewInitRequest; a request is never partially filled.
type InitRequest struct {
	// ProjectName is the package name written into the manifest.
	ProjectName string `validate:"required,projectname"`

	// Destination is the absolute directory the project is created in.
	Destination string `validate:"required"`

	// Template is the resolved template source.
	Template locator.Source

	// Entry is the catalog entry when Template is catalogued, nil otherwise.
	Entry *catalog.Entry

	// DeployAfter requests creating the project environment after generation.
	DeployAfter bool

	// Force allows generating into a non-empty destination.
	Force bool
}

// Option adjusts optional request fields.
type Option func(*InitRequest)

// WithDeployAfter sets whether the environment is created afterwards.
func WithDeployAfter(deploy bool) Option {
	return func(r *InitRequest) { r.DeployAfter = deploy }
}

// WithForce sets whether a non-empty destination is accepted.
func WithForce(force bool) Option {
	return func(r *InitRequest) { r.Force = force }
}

// NewInitRequest validates its inputs and returns a complete request.
func NewInitRequest(name, destination string, template locator.Source, entry *catalog.Entry, opts ...Option) (*InitRequest, error) {
	req := &InitRequest{
		ProjectName: strings.TrimSpace(name),
		Template:    template,
		Entry:       entry,
	}
	if strings.TrimSpace(destination) != "" {
		abs, err := filepath.Abs(destination)
		if err != nil {
			return nil, fmt.Errorf("resolving destination %q: %w", destination, err)
		}
		req.Destination = abs
	}
	for _, opt := range opts {
		opt(req)
	}

	if err := requestValidator().Struct(req); err != nil {
		return nil, translate(err, req)
	}
	return req, nil
}

var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("projectname", func(fl validator.FieldLevel) bool {
		return manifest.ValidateProjectName(fl.Field().String()) == nil
	})
	v.RegisterStructValidation(validateTemplate, InitRequest{})
	return v
})

func validateTemplate(sl validator.StructLevel) {
	req := sl.Current().Interface().(InitRequest)
	switch {
	case req.Template.Origin == locator.Unknown:
		sl.ReportError(req.Template, "Template", "Template", "required", "")
	case req.Template.Origin == locator.CatalogName && req.Entry == nil:
		sl.ReportError(req.Entry, "Entry", "Entry", "catalogentry", "")
	case req.Template.Origin != locator.CatalogName && req.Entry != nil:
		sl.ReportError(req.Entry, "Entry", "Entry", "catalogentry", "")
	}
}

func translate(err error, req *InitRequest) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "ProjectName":
		msg := "project name cannot be empty"
		if fe.Tag() == "projectname" {
			msg = manifest.ValidateProjectName(req.ProjectName).Error()
		}
		return oerrors.NewValidationError(msg, "", "name",
			"use lowercase letters, digits, '-' or '_', starting with a letter")
	case "Destination":
		return oerrors.NewValidationError("destination directory is required", "", "path", "")
	case "Template":
		return oerrors.NewValidationError("no template selected", "", "template",
			"pass --template or --from")
	case "Entry":
		return oerrors.NewValidationError(
			fmt.Sprintf("template %s does not match its catalog entry", req.Template), "", "template", "")
	}
	return oerrors.NewValidationError(fe.Error(), "", fe.Field(), "")
}
