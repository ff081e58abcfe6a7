package tui

import "github.com/charmbracelet/lipgloss"

var styleLogo = lipgloss.NewStyle().Foreground(colorMutedLight)

// Logo returns a styled single-line logo for the status bar.
// Background is inherited from the parent status bar container.
func Logo() string {
	return styleLogo.Render("┃┃ SCRIPTURE STEPS ┃┃")
}

// LogoPlain returns the unstyled logo text.
func LogoPlain() string {
	return "┃┃ SCRIPTURE STEPS ┃┃"
}
