package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shuttle-hq/shuttle-cli/internal/config"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the Shuttle CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Values pass validation (API URL is a URL, timeout is not negative)

The config path is resolved using precedence:
  --config flag > SHUTTLE_CONFIG env > ~/.shuttle/config.yaml

Examples:
  # Validate default configuration
  shuttle config vet

  # Validate custom config path
  shuttle config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	restore := output.SetOutput(cmd.OutOrStdout())
	defer output.SetOutput(restore)

	resolved := GetResolvedConfig()
	configPath, err := config.ExpandPath(resolved.ConfigPath.Value)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	output.Debug("validating config",
		"path", configPath,
		"source", resolved.ConfigPath.Source,
	)

	// Check 1: Config file exists
	exists, err := config.ConfigFileExists(configPath)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not check "+configPath)
	}
	if !exists {
		return oerrors.NewNotFoundError("configuration file not found", configPath,
			"Run 'shuttle config init' to create default configuration", nil)
	}
	output.Println(output.FormatVetCheck("Config file found", configPath))

	// Check 2: Config file parses
	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: configPath,
			Cause:    oerrors.ErrValidation,
		}
	}
	output.Println(output.FormatVetCheck("Config file parsed", ""))

	// Check 3: Values are valid
	if err := config.Validate(cfg); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: configPath,
			Hint:     "Fix the listed keys or regenerate with 'shuttle config init --force'",
			Cause:    oerrors.ErrValidation,
		}
	}
	output.Println(output.FormatVetCheck("Config values valid", "api "+cfg.WithDefaults().APIURL))

	return nil
}
