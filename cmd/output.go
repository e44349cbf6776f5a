package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/getlawrence/brkset/internal/config"
	"github.com/getlawrence/brkset/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newLogger picks the spinner UI for text output on a terminal. Structured
// output keeps stdout clean, so progress goes to stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) logger.ProgressLogger {
	if cfg.Output.Format != "text" {
		return logger.NewStdoutLogger(cmd.ErrOrStderr())
	}
	if cmd.OutOrStdout() == os.Stdout && logger.IsInteractive() {
		return logger.NewUILogger(os.Stdout)
	}
	return logger.NewStdoutLogger(cmd.OutOrStdout())
}

// writeStructured encodes v as json or yaml
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
