// Package cmdutil provides shared command utilities for shuttle subcommands.
// It centralizes flag group management, template source resolution, and
// user-facing error and report formatting.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/locator"
)

// TemplateFlags holds the flags that pick what a project is generated from
// (init).
type TemplateFlags struct {
	Template  string
	From      string
	Subfolder string
}

// AddTo registers the template flags on the given cobra command.
func (f *TemplateFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Template, "template", "t", "",
		"Catalog template to use (\"none\" for no framework)")
	cmd.Flags().StringVar(&f.From, "from", "",
		"Template source: local path, gh:owner/repo, owner/repo, or URL")
	cmd.Flags().StringVar(&f.Subfolder, "subfolder", "",
		"Path inside the --from source to use as the template")

	cmd.MarkFlagsMutuallyExclusive("template", "from")
}

// Validate checks flag combinations cobra cannot express.
func (f *TemplateFlags) Validate() error {
	if f.Subfolder != "" && f.From == "" {
		return oerrors.NewValidationError("--subfolder requires --from", "", "subfolder",
			"catalog templates already know their subfolder")
	}
	return nil
}

// Resolve turns the flags into a template source. The returned entry is set
// only for catalog templates. ok is false when neither --template nor --from
// was given.
func (f *TemplateFlags) Resolve(cat *catalog.Catalog, resolver *locator.Resolver) (src locator.Source, entry *catalog.Entry, ok bool, err error) {
	switch {
	case f.Template != "":
		e, found := cat.Lookup(f.Template)
		if !found {
			return locator.Source{}, nil, false, oerrors.NewValidationError(
				fmt.Sprintf("unknown template %q", f.Template), "", "template",
				"Valid templates: "+strings.Join(cat.Names(), ", "))
		}
		return e.Source, &e, true, nil
	case f.From != "":
		src, err := resolver.Resolve(f.From, f.Subfolder)
		if err != nil {
			return locator.Source{}, nil, false, oerrors.NewValidationError(err.Error(), "", "from",
				"Use a local path, gh:owner/repo, owner/repo, or a repository URL.")
		}
		return src, nil, true, nil
	}
	return locator.Source{}, nil, false, nil
}

// DeployFlags holds flags for the post-generation environment request
// (init).
type DeployFlags struct {
	APIKey    string
	CreateEnv bool
}

// AddTo registers the deploy flags on the given cobra command.
func (f *DeployFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.APIKey, "api-key", "",
		"Shuttle API key (env: SHUTTLE_API_KEY)")
	cmd.Flags().BoolVar(&f.CreateEnv, "create-env", false,
		"Create the project environment on Shuttle afterwards")
}

// Preset returns the pre-answered confirm value, or nil when the user did not
// pass --create-env.
func (f *DeployFlags) Preset(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("create-env") {
		return nil
	}
	v := f.CreateEnv
	return &v
}

// ResolveProjectDir returns the project directory from command args, or ""
// when it still has to be asked for.
func ResolveProjectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
