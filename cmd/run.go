package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/getlawrence/brkset/internal/host"
	"github.com/getlawrence/brkset/internal/logger"
	"github.com/getlawrence/brkset/internal/telemetry"
	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/getlawrence/brkset/internal/ui"
	"github.com/getlawrence/brkset/internal/workspace"
	"github.com/spf13/cobra"
)

// errIncomplete is returned in strict mode when the run did not cover everything
var errIncomplete = errors.New("breakpoint run incomplete")

// runBreakpoints attaches to the host, runs the traversal chosen by run and
// prints the report.
func runBreakpoints(cmd *cobra.Command, title string, run func(ctx context.Context, e *traversal.Engine) *traversal.Report) (err error) {
	ctx := cmd.Context()
	app := GetAppConfig(cmd)
	cfg := app.Config

	if cfg.Output.Wait {
		defer func() {
			if waitErr := ui.WaitForKey(ctx, ui.DefaultExitPrompt, cmd.InOrStdin(), cmd.OutOrStdout()); waitErr != nil && err == nil {
				err = waitErr
			}
		}()
	}

	if app.Trace {
		shutdown, err := telemetry.Setup(ctx, cmd.ErrOrStderr(), Version)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	h, err := attach(cmd, app)
	if err != nil {
		return err
	}
	defer h.Close()

	engine := traversal.New(h,
		traversal.WithLogger(app.Logger),
		traversal.WithRetryPolicy(traversal.RetryPolicy{
			MaxAttempts: cfg.Traversal.RetryAttempts,
			Backoff:     cfg.Traversal.RetryBackoff,
		}),
		traversal.WithNestedProjects(cfg.Traversal.Nested),
	)

	spinner := app.Logger.StartSpinner(title)
	report := run(ctx, engine)
	if report.Failed() {
		spinner.Fail()
	} else {
		spinner.Stop()
	}

	if err := printReport(cmd, app, report); err != nil {
		return err
	}
	return exitStatus(report, cfg.Traversal.Strict)
}

// attach locates the host, behind a spinner when the terminal allows it
func attach(cmd *cobra.Command, app *AppConfig) (*host.Host, error) {
	cfg := app.Config
	opts := host.Options{
		Workspace:   cfg.Workspace.Root,
		Debugger:    cfg.Debugger.Kind,
		Addrs:       cfg.Debugger.Addrs,
		DialTimeout: cfg.Debugger.DialTimeout,
		Output:      debuggerOutput(cmd, app),
		Discovery:   discoveryOptions(app),
	}

	var locateLog logger.Logger = logger.Discard{}
	if app.Verbose {
		locateLog = app.Logger
	}

	if _, ok := app.Logger.(*logger.UILogger); ok && !app.Verbose {
		var h *host.Host
		err := ui.RunSpinner(cmd.Context(), "Attaching to host...", func(log logger.Logger) error {
			var e error
			h, e = host.Locate(cmd.Context(), opts, log)
			return e
		})
		return h, err
	}
	return host.Locate(cmd.Context(), opts, locateLog)
}

// debuggerOutput keeps print-debugger records off stdout when stdout carries
// a structured report, and routes them through the spinner logger when one
// owns the terminal
func debuggerOutput(cmd *cobra.Command, app *AppConfig) io.Writer {
	if app.Config.Output.Format != "text" {
		return cmd.ErrOrStderr()
	}
	if spinnerLog, ok := app.Logger.(*logger.UILogger); ok {
		return logger.NewLineWriter(spinnerLog)
	}
	return cmd.OutOrStdout()
}

func discoveryOptions(app *AppConfig) workspace.Options {
	ws := app.Config.Workspace
	return workspace.Options{
		ExcludePaths:   ws.ExcludePaths,
		MaxDepth:       ws.MaxDepth,
		ProjectMarkers: ws.ProjectMarkers,
	}
}

func printReport(cmd *cobra.Command, app *AppConfig, report *traversal.Report) error {
	format := app.Config.Output.Format
	if format == "text" {
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderReport(report, app.Verbose))
		return nil
	}
	return writeStructured(cmd.OutOrStdout(), format, report)
}

// exitStatus is lenient unless strict is set
func exitStatus(report *traversal.Report, strict bool) error {
	if !strict || !report.Failed() {
		return nil
	}
	return fmt.Errorf("%w: %d not found, %d skipped, %d retries exhausted",
		errIncomplete, len(report.NotFound), report.Skipped, report.Exhausted)
}
