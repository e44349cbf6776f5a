package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// UILogger prints log lines above an animated spinner line.
type UILogger struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *uiSpinner
}

func NewUILogger(out io.Writer) *UILogger {
	if out == nil {
		out = os.Stdout
	}
	return &UILogger{out: out}
}

// IsInteractive reports whether stdout is attached to a terminal.
// Used to decide when to use interactive UI elements like spinners.
func IsInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	l.Log(strings.TrimSuffix(text, "\n"))
}

// Log keeps the message on screen; an active spinner is redrawn below it on its next frame.
func (l *UILogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.spinner != nil {
		fmt.Fprint(l.out, "\r\033[2K")
	}
	fmt.Fprintln(l.out, msg)
}

// uiSpinner is a minimal spinner implementation suitable for simple CLI UIs.
// It uses a background goroutine to animate while printing to the logger output.
type uiSpinner struct {
	parent  *UILogger
	mu      sync.Mutex
	text    string
	stopped chan struct{}
	done    chan struct{}
	failed  bool
}

func (l *UILogger) StartSpinner(text string) Spinner {
	l.mu.Lock()
	prev := l.spinner
	l.spinner = nil
	l.mu.Unlock()
	if prev != nil {
		prev.internalStop(false)
	}

	s := &uiSpinner{parent: l, text: text, stopped: make(chan struct{}), done: make(chan struct{})}
	l.mu.Lock()
	l.spinner = s
	l.mu.Unlock()
	go s.loop()
	return s
}

func (s *uiSpinner) loop() {
	defer close(s.done)
	frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
	i := 0
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	out := s.parent.out
	for {
		select {
		case <-s.stopped:
			s.mu.Lock()
			text, failed := s.text, s.failed
			s.mu.Unlock()
			mark := "✓"
			if failed {
				mark = "✗"
			}
			s.parent.mu.Lock()
			fmt.Fprintf(out, "\r\033[2K%s %s\n", mark, text)
			s.parent.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			text := s.text
			s.mu.Unlock()
			s.parent.mu.Lock()
			fmt.Fprintf(out, "\r\033[2K%c %s", frames[i%len(frames)], text)
			s.parent.mu.Unlock()
			i++
		}
	}
}

func (s *uiSpinner) Update(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *uiSpinner) internalStop(failed bool) {
	s.mu.Lock()
	s.failed = failed
	s.mu.Unlock()
	select {
	case <-s.stopped:
		// already stopped
	default:
		close(s.stopped)
	}
	<-s.done
}

func (s *uiSpinner) detach() {
	s.parent.mu.Lock()
	if s.parent.spinner == s {
		s.parent.spinner = nil
	}
	s.parent.mu.Unlock()
}

func (s *uiSpinner) Stop() {
	s.internalStop(false)
	s.detach()
}

func (s *uiSpinner) Fail() {
	s.internalStop(true)
	s.detach()
}
