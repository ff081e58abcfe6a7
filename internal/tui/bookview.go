package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/stats"
)

// gridColumns is the number of chapters per row in the chapter grid.
const gridColumns = 10

// renderBookList renders the books with a selection cursor, scrolled to
// keep the cursor within height rows.
func renderBookList(books []catalog.Book, r progress.Record, cursor, height, width int) string {
	if len(books) == 0 {
		return styleDim.Render("  no books match")
	}
	start, end := window(len(books), cursor, height)
	var b strings.Builder
	for i := start; i < end; i++ {
		book := books[i]
		row := bookRow(book, r, width)
		if i == cursor {
			row = styleSelectionIndicator.Render(selectionIndicator) + styleRowSelected.Render(row)
			row = padToWidth(row, width, colorSurfaceBright)
		} else {
			row = " " + row
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func bookRow(book catalog.Book, r progress.Record, width int) string {
	status := stats.Classify(r, book)
	icon, style := statusIcon(status)
	star := " "
	if r.IsBookFavorite(book.ID) {
		star = styleStar.Render(iconStar)
	}
	name := TruncateWithEllipsis(book.Name, 18)
	counts := fmt.Sprintf("%3d/%-3d", len(r.Completed(book.ID)), book.Chapters)
	row := fmt.Sprintf("%s %s %-18s %s", style.Render(icon), star, name, styleRowNormal.Render(counts))
	if d, ok := r.CompletionDate(book.ID); ok && width >= CompactWidth {
		row += "  " + styleDim.Render(d)
	}
	return row
}

func statusIcon(s stats.Status) (string, lipgloss.Style) {
	switch s {
	case stats.StatusFull:
		return iconRead, styleRowRead
	case stats.StatusPartial:
		return iconPartial, styleRowPartial
	default:
		return iconUnread, styleRowUnread
	}
}

// renderChapters renders book's chapter grid with the cursor on chapter.
func renderChapters(book catalog.Book, r progress.Record, cursor int) string {
	var b strings.Builder
	title := fmt.Sprintf("%s  %d/%d chapters", book.Name, len(r.Completed(book.ID)), book.Chapters)
	if r.IsBookFavorite(book.ID) {
		title += " " + styleStar.Render(iconStar)
	}
	b.WriteString(styleSectionTitle.Render(title))
	b.WriteString("\n\n")
	for ch := 1; ch <= book.Chapters; ch++ {
		cell := fmt.Sprintf("%4d", ch)
		switch {
		case ch == cursor:
			cell = styleCellCursor.Render(cell)
		case r.IsChapterComplete(book.ID, ch):
			cell = styleCellRead.Render(cell)
		default:
			cell = styleCellUnread.Render(cell)
		}
		if r.IsChapterFavorite(book.ID, ch) {
			cell += styleStar.Render(iconStar)
		} else {
			cell += " "
		}
		b.WriteString(cell)
		if ch%gridColumns == 0 && ch < book.Chapters {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderFavorites renders the favorites index.
func renderFavorites(idx progress.FavoritesIndex) string {
	if idx.Empty() {
		return styleDim.Render("  No favorites yet. Press F on a book or f on a chapter.")
	}
	var b strings.Builder
	if len(idx.Books) > 0 {
		b.WriteString(styleSectionTitle.Render("Favorite books"))
		for _, book := range idx.Books {
			b.WriteString("\n  " + styleStar.Render(iconStar) + " " + book.Name)
		}
	}
	if len(idx.Chapters) > 0 {
		if len(idx.Books) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styleSectionTitle.Render("Favorite chapters"))
		for _, fc := range idx.Chapters {
			nums := make([]string, len(fc.Chapters))
			for i, ch := range fc.Chapters {
				nums[i] = fmt.Sprint(ch)
			}
			b.WriteString(fmt.Sprintf("\n  %-18s %s", fc.Book.Name, strings.Join(nums, ", ")))
		}
	}
	return b.String()
}
