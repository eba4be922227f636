package commands

import (
	fastmvp "github.com/Hermes08/FastMVP-Core"
	"github.com/Hermes08/FastMVP-Core/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the FastMVP CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fastmvp",
		Short: "Generate downloadable project scaffolds from a declarative config",
		Long: `FastMVP turns a project configuration (name, description, features,
template) into a complete, buildable project scaffold packaged as a
single zip archive.

• fastmvp new    — generate a scaffold archive locally
• fastmvp serve  — run the HTTP generation service`,
		Version: fastmvp.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
