// Package progress defines the persisted reading-progress record and the
// pure transitions that produce each next snapshot of it.
//
// Every operation takes a Record by value and returns a new Record. Maps are
// copied on write: only the touched key gets a fresh slice, all other
// entries keep sharing their slices with the previous snapshot. Callers
// must therefore treat the slices inside a Record as read-only.
package progress

import (
	"maps"
	"slices"
	"time"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
)

// Books is the catalog view the transitions need.
type Books interface {
	Lookup(id string) (catalog.Book, bool)
}

// Place is the current reading position.
type Place struct {
	BookID  string `json:"bookId"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// Record is the canonical persisted progress shape.
type Record struct {
	CompletedChapters map[string][]int  `json:"completedChapters"`
	FavoritedChapters map[string][]int  `json:"favoritedChapters"`
	FavoritedBooks    []string          `json:"favoritedBooks"`
	CompletedDates    map[string]string `json:"completedDates"`
	CurrentPlace      *Place            `json:"currentPlace"`
	LastUpdated       string            `json:"lastUpdated"`
}

// Equal reports whether a and b hold the same progress. LastUpdated is
// ignored, and nil collections equal empty ones.
func Equal(a, b Record) bool {
	eqInts := func(x, y []int) bool { return slices.Equal(x, y) }
	switch {
	case !maps.EqualFunc(a.CompletedChapters, b.CompletedChapters, eqInts),
		!maps.EqualFunc(a.FavoritedChapters, b.FavoritedChapters, eqInts),
		!slices.Equal(a.FavoritedBooks, b.FavoritedBooks),
		!maps.Equal(a.CompletedDates, b.CompletedDates):
		return false
	}
	if a.CurrentPlace == nil || b.CurrentPlace == nil {
		return a.CurrentPlace == b.CurrentPlace
	}
	return *a.CurrentPlace == *b.CurrentPlace
}

// Empty returns the empty canonical record.
func Empty() Record {
	return Record{
		CompletedChapters: map[string][]int{},
		FavoritedChapters: map[string][]int{},
		FavoritedBooks:    []string{},
		CompletedDates:    map[string]string{},
	}
}

// Completed returns the completed chapters of a book as stored.
func (r Record) Completed(bookID string) []int {
	return r.CompletedChapters[bookID]
}

// IsChapterComplete reports whether a chapter is marked complete.
func (r Record) IsChapterComplete(bookID string, chapter int) bool {
	return slices.Contains(r.CompletedChapters[bookID], chapter)
}

// IsChapterFavorite reports whether a chapter is favorited.
func (r Record) IsChapterFavorite(bookID string, chapter int) bool {
	return slices.Contains(r.FavoritedChapters[bookID], chapter)
}

// IsBookFavorite reports whether a book is favorited.
func (r Record) IsBookFavorite(bookID string) bool {
	return slices.Contains(r.FavoritedBooks, bookID)
}

// CompletionDate returns the recorded completion date of a book.
func (r Record) CompletionDate(bookID string) (string, bool) {
	d, ok := r.CompletedDates[bookID]
	return d, ok
}

// UpdatedAt parses LastUpdated. The zero time and false are returned when
// the field is unset or not RFC 3339.
func (r Record) UpdatedAt() (time.Time, bool) {
	if r.LastUpdated == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.LastUpdated)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Stamp returns r with LastUpdated set to now.
func (r Record) Stamp(now time.Time) Record {
	r.LastUpdated = now.UTC().Format(time.RFC3339Nano)
	return r
}

// withDefaults replaces nil collections with empty ones so the encoded form
// always carries {} and [] rather than null.
func (r Record) withDefaults() Record {
	if r.CompletedChapters == nil {
		r.CompletedChapters = map[string][]int{}
	}
	if r.FavoritedChapters == nil {
		r.FavoritedChapters = map[string][]int{}
	}
	if r.FavoritedBooks == nil {
		r.FavoritedBooks = []string{}
	}
	if r.CompletedDates == nil {
		r.CompletedDates = map[string]string{}
	}
	return r
}
