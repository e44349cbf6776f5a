package cmd

import (
	"context"

	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/spf13/cobra"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set PROJECT [PROJECT...]",
	Short: "Set breakpoints in the named projects",
	Long: `Set finds each named project in the open solution and inserts a breakpoint
at the start of every function it contains.

Names match ignoring case and are searched through solution folders and
sub-projects; the first match wins. A name that matches nothing is reported
and the run continues with the next one.

Example usage:
  brkset set OrderService                          # one project, print debugger
  brkset set api core --debugger dap --addr :4711  # two projects through a DAP server
  brkset set Web -o json                           # machine readable report`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBreakpoints(cmd, "Setting breakpoints...", func(ctx context.Context, e *traversal.Engine) *traversal.Report {
			return e.Run(ctx, args)
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
