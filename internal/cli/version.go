package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agents-at-scale/ark-cli/internal/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ark version %s\n", version.Version)
			fmt.Fprintf(out, "Git commit: %s\n", version.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", version.BuildDate)
		},
	}
}
