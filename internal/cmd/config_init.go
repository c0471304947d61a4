package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shuttle-hq/shuttle-cli/internal/config"
	oerrors "github.com/shuttle-hq/shuttle-cli/internal/errors"
	"github.com/shuttle-hq/shuttle-cli/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the Shuttle CLI configuration.

Creates ~/.shuttle/config.yaml (or the path given by --config / SHUTTLE_CONFIG)
with the default API endpoint, git binary, and fetch timeout.

The API key is never written by this command; set SHUTTLE_API_KEY or pass
--api-key to commands that need it.

Examples:
  # Initialize configuration
  shuttle config init

  # Overwrite existing configuration
  shuttle config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	restore := output.SetOutput(cmd.OutOrStdout())
	defer output.SetOutput(restore)

	configPath, err := config.ExpandPath(GetConfigPath())
	if err != nil || configPath == "" {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine config file path")
	}

	// Check if config exists
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configPath,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}

	// Create directories with secure permissions (0700)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(configPath))
	}

	// Write config with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+configPath)
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + output.StyleNoun.Render(configPath)))
	output.Println("Validate with: shuttle config vet")

	return nil
}
