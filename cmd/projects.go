package cmd

import (
	"fmt"
	"os"

	"github.com/getlawrence/brkset/internal/host"
	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/getlawrence/brkset/internal/ui"
	"github.com/getlawrence/brkset/internal/workspace"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects of the solution",
	Long: `List shows the projects of the solution with the sub-projects reachable
through solution folders, as they are resolved by set and all.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	app := GetAppConfig(cmd)
	root := app.Config.Workspace.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root = host.FindWorkspaceRoot(wd)
	}

	solution, err := workspace.Open(root, nil, discoveryOptions(app))
	if err != nil {
		return err
	}
	tree, err := traversal.NewResolver(app.Logger).ListTree(cmd.Context(), solution)
	if err != nil {
		return err
	}

	if format := app.Config.Output.Format; format != "text" {
		return writeStructured(cmd.OutOrStdout(), format, tree)
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderTree(tree))
	return nil
}
