package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuttle-hq/shuttle-cli/internal/output"
	"github.com/shuttle-hq/shuttle-cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show Shuttle CLI version information.

Displays the CLI version, commit, build date, Go version, and platform.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	restore := output.SetOutput(cmd.OutOrStdout())
	defer output.SetOutput(restore)

	info := version.Get()

	output.Println(fmt.Sprintf("shuttle version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:    %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:     %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:        %s", info.GoVersion))
	output.Println(fmt.Sprintf("  Platform:  %s", info.Platform))

	return nil
}
