package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const DefaultExitPrompt = "Press any key to exit..."

// WaitForKey shows prompt and blocks until a key is pressed. On a terminal
// any single key counts; otherwise a line is read from in.
func WaitForKey(ctx context.Context, prompt string, in io.Reader, out io.Writer) error {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p := tea.NewProgram(keyModel{prompt: prompt}, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
		_, err := p.Run()
		return err
	}

	fmt.Fprintln(out, prompt)
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

type keyModel struct {
	prompt  string
	pressed bool
}

func (m keyModel) Init() tea.Cmd { return nil }

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.pressed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m keyModel) View() string {
	if m.pressed {
		return ""
	}
	return lipgloss.NewStyle().Faint(true).Render(m.prompt) + "\n"
}
