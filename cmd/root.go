package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/getlawrence/brkset/internal/config"
	"github.com/getlawrence/brkset/internal/debugger"
	"github.com/getlawrence/brkset/internal/ui"
	"github.com/spf13/cobra"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brkset",
	Short: "Set a breakpoint at the start of every function of a solution's projects",
	Long: `brkset attaches to the running host of a solution, finds the requested
projects (by name, ignoring case, including sub-projects behind solution
folders, or all of them) and inserts a debugger breakpoint at the first
statement of every function of every class of every namespace.

Failures are reported per node and never stop the run. Reads that hit a busy
host are retried.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewAppConfig(nil, nil) // Config and logger are resolved per command
	ctx = context.WithValue(ctx, ConfigKey, app)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	defaults := config.DefaultConfig()

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .brkset.yaml in the working or home directory)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", defaults.Output.Format, "output format (text, json, yaml)")
	flags.StringP("workspace", "w", "", "solution root (default: nearest directory holding a *.sln)")
	flags.StringP("debugger", "d", defaults.Debugger.Kind, fmt.Sprintf("debugger service (%s)", strings.Join(debugger.Kinds(), ", ")))
	flags.StringSlice("addr", nil, "debugger address, tried in order (repeatable)")
	flags.Duration("dial-timeout", defaults.Debugger.DialTimeout, "timeout for connecting to the debugger")
	flags.Bool("strict", false, "exit with an error when a project is missing or a node was skipped")
	flags.Bool("wait", false, "wait for a key press before exiting")
	flags.Int("retry-attempts", defaults.Traversal.RetryAttempts, "attempts to read a namespace while the host is busy")
	flags.Duration("retry-backoff", defaults.Traversal.RetryBackoff, "wait after each busy attempt")
	flags.Bool("nested", false, "with all, also walk sub-projects below top-level projects")
	flags.Bool("trace", false, "export traces and metrics of the run to stderr")
	flags.Bool("no-color", false, "render reports without colors")
}

// loadAppConfig resolves the configuration file, environment and flags, in
// increasing precedence, into the AppConfig carried by the command context.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ui.SetColor(cfg.Output.Color)

	app := GetAppConfig(cmd)
	app.Config = cfg
	app.Verbose, _ = cmd.Flags().GetBool("verbose")
	app.Trace, _ = cmd.Flags().GetBool("trace")
	app.Logger = newLogger(cmd, cfg)
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format, _ = flags.GetString("output")
	}
	if flags.Changed("workspace") {
		cfg.Workspace.Root, _ = flags.GetString("workspace")
	}
	if flags.Changed("debugger") {
		cfg.Debugger.Kind, _ = flags.GetString("debugger")
	}
	if flags.Changed("addr") {
		cfg.Debugger.Addrs, _ = flags.GetStringSlice("addr")
	}
	if flags.Changed("dial-timeout") {
		cfg.Debugger.DialTimeout, _ = flags.GetDuration("dial-timeout")
	}
	if flags.Changed("strict") {
		cfg.Traversal.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("wait") {
		cfg.Output.Wait, _ = flags.GetBool("wait")
	}
	if flags.Changed("retry-attempts") {
		cfg.Traversal.RetryAttempts, _ = flags.GetInt("retry-attempts")
	}
	if flags.Changed("retry-backoff") {
		cfg.Traversal.RetryBackoff, _ = flags.GetDuration("retry-backoff")
	}
	if flags.Changed("nested") {
		cfg.Traversal.Nested, _ = flags.GetBool("nested")
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		cfg.Output.Color = !noColor
	}
}
