package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestSetColor(t *testing.T) {
	SetColor(true)
	t.Cleanup(func() { SetColor(true) })

	report := &traversal.Report{Projects: []string{"Api"}, Inserted: 1}

	lipgloss.SetColorProfile(termenv.TrueColor)
	assert.Contains(t, RenderReport(report, false), "\x1b[")

	SetColor(false)
	plain := RenderReport(report, false)
	assert.NotContains(t, plain, "\x1b[")
	assert.Contains(t, plain, "Breakpoints Inserted: 1")
}
