package cmd

import (
	"context"

	"github.com/getlawrence/brkset/internal/config"
	"github.com/getlawrence/brkset/internal/logger"
	"github.com/spf13/cobra"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config  *config.Config
	Logger  logger.ProgressLogger
	Verbose bool
	Trace   bool
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, log logger.ProgressLogger) *AppConfig {
	return &AppConfig{
		Config: cfg,
		Logger: log,
	}
}

// GetAppConfig returns the AppConfig carried by the command context, creating
// one when the command runs without Execute (tests)
func GetAppConfig(cmd *cobra.Command) *AppConfig {
	if ctx := cmd.Context(); ctx != nil {
		if app, ok := ctx.Value(ConfigKey).(*AppConfig); ok && app != nil {
			return app
		}
	}
	app := NewAppConfig(config.DefaultConfig(), logger.NewStdoutLogger(cmd.OutOrStdout()))
	cmd.SetContext(contextWithApp(cmd, app))
	return app
}

func contextWithApp(cmd *cobra.Command, app *AppConfig) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ConfigKey, app)
}
