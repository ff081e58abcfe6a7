package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/scripturesteps/internal/stats"
)

// StatusBar renders the persistent top bar with the overall progress.
type StatusBar struct {
	Summary stats.Summary
	Width   int
	Bar     progress.Model
}

// NewStatusBar returns a status bar with a solid green progress bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		Bar: progress.New(
			progress.WithSolidFill(string(colorSuccess)),
			progress.WithoutPercentage(),
			progress.WithWidth(20),
		),
	}
}

// View renders the status bar as a single line. Narrow terminals drop the
// testament figures and the bar.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth
	sum := s.Summary

	segments := []string{
		styleStatusValue.Render(fmt.Sprintf("%.1f%%", sum.Percentage)),
	}
	if !compact {
		segments = append([]string{s.Bar.ViewAs(sum.Percentage / 100)}, segments...)
		segments = append(segments,
			styleStatusLabel.Render("OT ")+styleStatusValue.Render(fmt.Sprintf("%.1f%%", sum.OldPercentage)),
			styleStatusLabel.Render("NT ")+styleStatusValue.Render(fmt.Sprintf("%.1f%%", sum.NewPercentage)),
		)
	}
	segments = append(segments,
		styleStatusLabel.Render("books ")+styleStatusValue.Render(fmt.Sprintf("%d/%d", sum.CompletedBooks, sum.TotalBooks)),
	)

	barBg := lipgloss.NewStyle().Background(colorSurface)
	line := Logo() + barBg.Render("  ") + strings.Join(segments, barBg.Render("  "))

	const barPadding = 2
	inner := s.Width - barPadding
	if inner < 0 {
		inner = 0
	}
	return styleStatusBar.Width(s.Width).Render(padToWidth(line, inner, colorSurface))
}
