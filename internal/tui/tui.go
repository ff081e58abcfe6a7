package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/scripturesteps/internal/reflection"
	"github.com/papapumpkin/scripturesteps/internal/tracker"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program over s.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(ctx context.Context, s *tracker.Session, rf *reflection.Reflector, maxVerses int, opts ...tea.ProgramOption) *Program {
	model := NewAppModel(ctx, s, rf, maxVerses)

	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	allOpts = append(allOpts, opts...)

	return tea.NewProgram(model, allOpts...)
}

// Run creates and runs a TUI program, blocking until it exits.
func Run(ctx context.Context, s *tracker.Session, rf *reflection.Reflector, maxVerses int) error {
	p := NewProgram(ctx, s, rf, maxVerses)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
