package logger

import (
	"fmt"
	"io"
	"os"
)

// StdoutLogger writes plain lines, one per message. Used for batch runs and piped output.
type StdoutLogger struct {
	W io.Writer
}

// NewStdoutLogger returns a logger writing to w, or to stdout when w is nil
func NewStdoutLogger(w io.Writer) *StdoutLogger {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutLogger{W: w}
}

func (l *StdoutLogger) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(l.W, msg)
}

func (l *StdoutLogger) Log(msg string) { fmt.Fprintln(l.W, msg) }

func (l *StdoutLogger) StartSpinner(text string) Spinner {
	fmt.Fprintln(l.W, text)
	return &noOpSpinner{}
}

// Discard drops everything
type Discard struct{}

func (Discard) Logf(format string, args ...interface{}) {}
func (Discard) Log(msg string)                          {}
