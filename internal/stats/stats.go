// Package stats derives aggregate figures from a progress record. Nothing
// here is cached; every figure is recomputed from the record and catalog.
package stats

import (
	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
)

// Status classifies how much of a book is complete.
type Status int

const (
	StatusNone Status = iota
	StatusPartial
	StatusFull
)

func (s Status) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusFull:
		return "full"
	default:
		return "none"
	}
}

// Classify returns full when every chapter count is complete, partial for
// a non-empty proper subset, none otherwise.
func Classify(r progress.Record, b catalog.Book) Status {
	n := len(r.Completed(b.ID))
	switch {
	case n == b.Chapters && n > 0:
		return StatusFull
	case n > 0 && n < b.Chapters:
		return StatusPartial
	default:
		return StatusNone
	}
}

// BookFraction is the completed share of a book in [0, 1] for in-range data.
func BookFraction(r progress.Record, b catalog.Book) float64 {
	if b.Chapters <= 0 {
		return 0
	}
	return float64(len(r.Completed(b.ID))) / float64(b.Chapters)
}

// Percentage is the word-weighted completion across the catalog:
//
//	Σ (completed(b) / chapters(b)) × words(b) / totalWords × 100
//
// Each book's weight is spread evenly across its chapters.
func Percentage(r progress.Record, cat *catalog.Catalog) float64 {
	return weighted(r, cat.Books(), cat.TotalWordCount())
}

// TestamentPercentage is the weighted completion of one testament, measured
// against that testament's own word count.
func TestamentPercentage(r progress.Record, cat *catalog.Catalog, t catalog.Testament) float64 {
	books := catalog.Filter(cat.Books(), "", t)
	total := 0
	for _, b := range books {
		total += b.WordCount
	}
	return weighted(r, books, total)
}

func weighted(r progress.Record, books []catalog.Book, total int) float64 {
	if total <= 0 {
		return 0
	}
	var done float64
	for _, b := range books {
		done += BookFraction(r, b) * float64(b.WordCount)
	}
	return done / float64(total) * 100
}

// CompletedBooks counts books whose completed chapter count equals their
// chapter count.
func CompletedBooks(r progress.Record, cat *catalog.Catalog) int {
	n := 0
	for _, b := range cat.Books() {
		if Classify(r, b) == StatusFull {
			n++
		}
	}
	return n
}

// CompletedChapters sums completed chapter counts over catalog books.
func CompletedChapters(r progress.Record, cat *catalog.Catalog) int {
	n := 0
	for _, b := range cat.Books() {
		n += len(r.Completed(b.ID))
	}
	return n
}
