package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type logMsg string

// programLogger forwards log lines to a running program so they are printed
// above its view instead of racing with the renderer.
type programLogger struct {
	p *tea.Program
}

func (l *programLogger) Logf(format string, args ...interface{}) {
	l.Log(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

func (l *programLogger) Log(msg string) {
	l.p.Send(logMsg(msg))
}
