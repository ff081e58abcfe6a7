package progress

import (
	"maps"
	"slices"
)

// ToggleChapter marks a chapter complete, or clears it if already complete.
// Chapter numbers are not range-checked. Clearing the last chapter of a
// book leaves an empty entry for it.
func ToggleChapter(r Record, bookID string, chapter int) Record {
	r.CompletedChapters = toggleNumber(r.CompletedChapters, bookID, chapter)
	return r
}

// ToggleBook completes every chapter of a book, or removes the book's entry
// entirely when it is already fully complete. Unknown IDs leave r unchanged.
func ToggleBook(r Record, books Books, bookID string) Record {
	b, ok := books.Lookup(bookID)
	if !ok {
		return r
	}
	if len(r.CompletedChapters[bookID]) == b.Chapters {
		r.CompletedChapters = withoutKey(r.CompletedChapters, bookID)
		return r
	}
	r.CompletedChapters = withKey(r.CompletedChapters, bookID, FullRange(b.Chapters))
	return r
}

// ToggleFavoriteChapter flips the favorite flag of one chapter. It never
// touches completion.
func ToggleFavoriteChapter(r Record, bookID string, chapter int) Record {
	r.FavoritedChapters = toggleNumber(r.FavoritedChapters, bookID, chapter)
	return r
}

// ToggleFavoriteBook flips the favorite flag of a book. The ID list is kept
// sorted.
func ToggleFavoriteBook(r Record, bookID string) Record {
	next := slices.Clone(r.FavoritedBooks)
	if i := slices.Index(next, bookID); i >= 0 {
		next = slices.Delete(next, i, i+1)
	} else {
		next = append(next, bookID)
		slices.Sort(next)
	}
	if next == nil {
		next = []string{}
	}
	r.FavoritedBooks = next
	return r
}

// SetCompletionDate records date for a book verbatim. An empty date removes
// the entry. Dates are never cleared when a book is later un-completed.
func SetCompletionDate(r Record, bookID, date string) Record {
	next := maps.Clone(r.CompletedDates)
	if next == nil {
		next = map[string]string{}
	}
	if date == "" {
		delete(next, bookID)
	} else {
		next[bookID] = date
	}
	r.CompletedDates = next
	return r
}

// SetCurrentPlace overwrites the current position. Callers clamp the
// chapter and verse; see ClampPlace.
func SetCurrentPlace(r Record, bookID string, chapter, verse int) Record {
	r.CurrentPlace = &Place{BookID: bookID, Chapter: chapter, Verse: verse}
	return r
}

// ClearCurrentPlace removes the current position.
func ClearCurrentPlace(r Record) Record {
	r.CurrentPlace = nil
	return r
}

// Reset returns the empty canonical record.
func Reset() Record {
	return Empty()
}

// FullRange returns [1..n].
func FullRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// toggleNumber returns a copy of m in which key's list has n inserted (and
// re-sorted) or removed. Only key's slice is new.
func toggleNumber(m map[string][]int, key string, n int) map[string][]int {
	cur := m[key]
	var next []int
	if i := slices.Index(cur, n); i >= 0 {
		next = slices.Delete(slices.Clone(cur), i, i+1)
	} else {
		next = append(slices.Clone(cur), n)
		slices.Sort(next)
	}
	if next == nil {
		next = []int{}
	}
	return withKey(m, key, next)
}

func withKey(m map[string][]int, key string, v []int) map[string][]int {
	next := make(map[string][]int, len(m)+1)
	maps.Copy(next, m)
	next[key] = v
	return next
}

func withoutKey(m map[string][]int, key string) map[string][]int {
	next := maps.Clone(m)
	if next == nil {
		return map[string][]int{}
	}
	delete(next, key)
	return next
}
