package cmd

import (
	"fmt"
	"os"

	"github.com/getlawrence/brkset/internal/config"
	"github.com/spf13/cobra"
)

// configCmd groups configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and save the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show prints the configuration after merging the config file, .env,
BRKSET_* environment variables and flags. The config file in use is named on stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetAppConfig(cmd)
		path := configPath(cmd)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file: %s (not found, defaults in use)\n", path)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file: %s\n", path)
		}

		format := app.Config.Output.Format
		if format == "text" {
			format = "yaml"
		}
		return writeStructured(cmd.OutOrStdout(), format, app.Config)
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the effective configuration",
	Long: `Save writes the merged configuration to the file named by --config, else to the
config file found in the working or home directory, else to ~/.brkset.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetAppConfig(cmd)
		path := configPath(cmd)
		if err := config.SaveConfig(app.Config, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
		return nil
	},
}

func configPath(cmd *cobra.Command) string {
	explicit, _ := cmd.Flags().GetString("config")
	return config.GetConfigPath(explicit)
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
}
