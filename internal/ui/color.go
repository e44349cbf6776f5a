package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	profileOnce     sync.Once
	detectedProfile termenv.Profile
)

// SetColor switches styled rendering on or off. Switching it back on restores
// the profile detected for the terminal.
func SetColor(enabled bool) {
	profileOnce.Do(func() { detectedProfile = lipgloss.ColorProfile() })
	if enabled {
		lipgloss.SetColorProfile(detectedProfile)
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
