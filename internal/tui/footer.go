package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		var part string
		if compact {
			part = styleFooterKey.Render(help.Key)
		} else {
			part = styleFooterKey.Render(help.Key) + styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	return styleFooter.Width(f.Width).Render(line)
}

// BookListFooterBindings returns footer bindings for the book list.
func BookListFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Toggle, km.Enter, km.FavoriteBook, km.Search, km.Testament, km.Place, km.Favorites, km.Reflect, km.Reset, km.Quit}
}

// ChapterFooterBindings returns footer bindings when drilled into a book.
func ChapterFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Left, km.Right, km.Up, km.Down, km.Toggle, km.Favorite, km.FavoriteBook, km.Place, km.Back, km.Quit}
}

// FavoritesFooterBindings returns footer bindings for the favorites view.
func FavoritesFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Back, km.Reflect, km.Quit}
}

// SearchFooterBindings returns footer bindings while typing a search.
func SearchFooterBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// PromptFooterBindings returns footer bindings while a prompt is open.
func PromptFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Confirm, km.Cancel}
}
