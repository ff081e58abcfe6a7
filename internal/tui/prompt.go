package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
)

// ConfirmPrompt renders a yes/no overlay before a destructive action.
type ConfirmPrompt struct {
	Question string
}

// View renders the confirmation overlay.
func (c ConfirmPrompt) View() string {
	var b strings.Builder
	b.WriteString(styleError.Render(c.Question))
	b.WriteString("\n\n")
	b.WriteString(stylePromptAction.Render("[y]es") + "  " + styleRowNormal.Render("[n]o"))
	return styleDangerOverlay.Render(b.String())
}

// PlacePrompt asks for a chapter:verse position within one book.
type PlacePrompt struct {
	Book  catalog.Book
	Input textinput.Model
	Err   string
}

// NewPlacePrompt opens a prompt for book, prefilled with start.
func NewPlacePrompt(book catalog.Book, start progress.Place) *PlacePrompt {
	ti := textinput.New()
	ti.Placeholder = "chapter:verse"
	ti.CharLimit = 9
	ti.SetValue(fmt.Sprintf("%d:%d", start.Chapter, start.Verse))
	ti.Focus()
	return &PlacePrompt{Book: book, Input: ti}
}

// Parse reads the input as "chapter:verse" or "chapter" and clamps it to
// the book.
func (p *PlacePrompt) Parse(maxVerses int) (progress.Place, error) {
	return ParsePlace(p.Book, p.Input.Value(), maxVerses)
}

// View renders the prompt overlay.
func (p PlacePrompt) View() string {
	var b strings.Builder
	b.WriteString(stylePromptAction.Render("Reading place in " + p.Book.Name))
	b.WriteString("\n\n")
	b.WriteString(p.Input.View())
	if p.Err != "" {
		b.WriteString("\n")
		b.WriteString(styleError.Render(p.Err))
	}
	return stylePromptOverlay.Render(b.String())
}

// ParsePlace parses "chapter:verse" (or a bare chapter, meaning verse 1) and
// clamps the result to book.
func ParsePlace(book catalog.Book, s string, maxVerses int) (progress.Place, error) {
	chStr, vStr, hasVerse := strings.Cut(strings.TrimSpace(s), ":")
	ch, err := strconv.Atoi(strings.TrimSpace(chStr))
	if err != nil {
		return progress.Place{}, fmt.Errorf("invalid chapter %q", chStr)
	}
	verse := 1
	if hasVerse {
		verse, err = strconv.Atoi(strings.TrimSpace(vStr))
		if err != nil {
			return progress.Place{}, fmt.Errorf("invalid verse %q", vStr)
		}
	}
	return progress.ClampPlace(book, ch, verse, maxVerses), nil
}
