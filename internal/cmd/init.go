package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shuttle-hq/shuttle-cli/internal/catalog"
	"github.com/shuttle-hq/shuttle-cli/internal/cmdutil"
	"github.com/shuttle-hq/shuttle-cli/internal/config"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/generate"
	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
	"github.com/shuttle-hq/shuttle-cli/internal/project"
	"github.com/shuttle-hq/shuttle-cli/internal/prompt"
	"github.com/shuttle-hq/shuttle-cli/internal/verify"
	"github.com/shuttle-hq/shuttle-cli/internal/version"
)

// initOptions holds the flags for the init command.
type initOptions struct {
	name     string
	force    bool
	template cmdutil.TemplateFlags
	deploy   cmdutil.DeployFlags
}

// newGenerator builds the generator used by init. Tests replace it.
var newGenerator = func(rc *config.ResolvedConfig) *generate.Generator {
	git := generate.GitFetcher{
		Binary:    rc.GitBinary.Value,
		UserAgent: version.Get().UserAgent(),
	}
	return generate.NewGenerator(git, rc.FetchTimeout)
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	opts := &initOptions{}

	c := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new Shuttle project",
		Long: fmt.Sprintf(`Create a new Shuttle project from a template.

Any input not given as a flag or argument is asked for interactively:
project name, directory, framework, and whether to create the project
environment on Shuttle.

Templates (--template):
  %s

Sources (--from):
  ../my-template                  Local directory
  gh:owner/repo                   GitHub shorthand (also gl: and bb:)
  owner/repo                      GitHub repository
  https://host/owner/repo         Any git URL

Examples:
  # Create a rocket project without prompts
  shuttle init --name my-project --template rocket ./my-project

  # Use a template from a repository subfolder
  shuttle init --from shuttle-hq/shuttle-examples --subfolder tower/hello-world

  # Answer everything interactively
  shuttle init`, strings.Join(catalog.Default().Names(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c, args, opts)
		},
	}

	c.Flags().StringVar(&opts.name, "name", "", "Project name")
	c.Flags().BoolVarP(&opts.force, "force", "f", false, "Generate into a non-empty directory")
	opts.template.AddTo(c)
	opts.deploy.AddTo(c)

	return c
}

func runInit(cmd *cobra.Command, args []string, opts *initOptions) error {
	ctx := cmd.Context()
	restore := output.SetOutput(cmd.OutOrStdout())
	defer output.SetOutput(restore)

	cat := catalog.Default()
	rc := GetResolvedConfig()

	if err := opts.template.Validate(); err != nil {
		return err
	}
	source, entry, hasTemplate, err := opts.template.Resolve(cat, locator.NewResolver())
	if err != nil {
		return err
	}

	name := strings.TrimSpace(opts.name)
	if name != "" {
		if err := manifest.ValidateProjectName(name); err != nil {
			return oerrors.NewValidationError(fmt.Sprintf("invalid project name %q: %v", name, err), "", "name",
				"Use lowercase letters, digits, and hyphens, starting with a letter.")
		}
	}
	dir := cmdutil.ResolveProjectDir(args)
	deploy := opts.deploy.CreateEnv

	if name == "" || dir == "" || !hasTemplate {
		if cmd.InOrStdin() == os.Stdin && !output.IsInteractive() {
			output.Debug("stdin is not a terminal, reading answers line by line")
		}
		known := prompt.Known{
			Name:        name,
			Directory:   dir,
			HasTemplate: hasTemplate,
			Deploy:      opts.deploy.Preset(cmd),
		}

		flow := &prompt.Flow{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Catalog: cat}
		answers, err := flow.Run(ctx, known)
		if err != nil {
			return err
		}
		name, dir, deploy = answers.Name, answers.Directory, answers.Deploy
		if answers.Entry != nil {
			source, entry = answers.Entry.Source, answers.Entry
		}
	}

	req, err := project.NewInitRequest(name, dir, source, entry,
		project.WithDeployAfter(deploy),
		project.WithForce(opts.force))
	if err != nil {
		return err
	}

	output.ProjectLogger(req.ProjectName).Debug("resolved template", "source", req.Template.String())
	if req.Force {
		output.Info("--force set, template files replace files of the same name", "dir", req.Destination)
	}
	output.Println(output.StyleAction.Render("Creating project") + " " +
		output.StyleNoun.Render(req.ProjectName) + " in " + req.Destination)

	result, err := newGenerator(rc).Generate(ctx, req)
	if err != nil {
		return cmdutil.GenerationError(err, req)
	}

	printFileTree(req, result)

	// Generated files stay on disk; the error is printed after their tree.
	if err := verify.Validate(req.Destination, req.ProjectName, req.Entry); err != nil {
		verr := cmdutil.VerificationError(err, req)
		output.Error("generated project failed verification", "dir", req.Destination)
		fmt.Fprint(cmd.ErrOrStderr(), verr.Error())
		exitErr := oerrors.NewExitError(verr, oerrors.ExitValidationError)
		exitErr.Printed = true
		return exitErr
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("Project %s created in %s",
		output.StyleNoun.Render(req.ProjectName), req.Destination)))

	reportDeploy(req, rc, opts.deploy.APIKey)
	return nil
}

func printFileTree(req *project.InitRequest, result *generate.Result) {
	tree, err := output.RenderFileTree(filepath.Base(req.Destination), result.Files)
	if err != nil {
		output.Debug("rendering file tree", "error", err)
		return
	}
	output.Print(tree)
}

// reportDeploy tells the user what happens next. Environment creation itself
// runs on the platform side.
func reportDeploy(req *project.InitRequest, rc *config.ResolvedConfig, apiKey string) {
	if !req.DeployAfter {
		output.Println(output.StyleDim.Render("Run 'shuttle deploy' in " + req.Destination + " when you are ready."))
		return
	}

	if apiKey == "" {
		apiKey = rc.APIKey.Value
	}
	if apiKey == "" {
		output.Warn("no API key configured; environment creation will ask you to log in",
			"hint", "pass --api-key or set SHUTTLE_API_KEY")
	}

	output.Println(fmt.Sprintf("Environment for %s requested from %s",
		output.StyleNoun.Render(req.ProjectName), rc.APIURL.Value))
}
