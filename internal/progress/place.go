package progress

import "github.com/papapumpkin/scripturesteps/internal/catalog"

// DefaultMaxVerses is the verse ceiling used when none is configured. It is
// the length of the longest chapter in the canon (Psalm 119).
const DefaultMaxVerses = 176

// ClampPlace bounds chapter to [1, book.Chapters] and verse to
// [1, maxVerses]. A non-positive maxVerses means DefaultMaxVerses.
func ClampPlace(book catalog.Book, chapter, verse, maxVerses int) Place {
	if maxVerses <= 0 {
		maxVerses = DefaultMaxVerses
	}
	return Place{
		BookID:  book.ID,
		Chapter: clamp(chapter, 1, max(book.Chapters, 1)),
		Verse:   clamp(verse, 1, maxVerses),
	}
}

// StartOf is the place a reader lands on after choosing a new book.
func StartOf(book catalog.Book) Place {
	return Place{BookID: book.ID, Chapter: 1, Verse: 1}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
