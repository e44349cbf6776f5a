package cmd

import (
	"context"

	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/spf13/cobra"
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Set breakpoints in every project of the solution",
	Long: `All inserts a breakpoint at the start of every function of every top-level
project in the open solution. Use --nested to also walk sub-projects found
below solution folders and projects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBreakpoints(cmd, "Setting breakpoints in all projects...", func(ctx context.Context, e *traversal.Engine) *traversal.Report {
			return e.RunAll(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
