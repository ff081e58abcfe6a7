package stats

import (
	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
)

// Summary bundles the headline figures shown by every front end.
type Summary struct {
	Percentage        float64         `json:"percentage"`
	OldPercentage     float64         `json:"oldTestamentPercentage"`
	NewPercentage     float64         `json:"newTestamentPercentage"`
	CompletedBooks    int             `json:"completedBooks"`
	PartialBooks      int             `json:"partialBooks"`
	TotalBooks        int             `json:"totalBooks"`
	CompletedChapters int             `json:"completedChapters"`
	TotalChapters     int             `json:"totalChapters"`
	TotalWords        int             `json:"totalWords"`
	LastCompleted     string          `json:"lastCompleted,omitempty"`
	CurrentPlace      *progress.Place `json:"currentPlace"`
	LastUpdated       string          `json:"lastUpdated,omitempty"`
}

// Summarize computes a Summary of r against cat.
func Summarize(r progress.Record, cat *catalog.Catalog) Summary {
	s := Summary{
		Percentage:        Percentage(r, cat),
		OldPercentage:     TestamentPercentage(r, cat, catalog.OldTestament),
		NewPercentage:     TestamentPercentage(r, cat, catalog.NewTestament),
		TotalBooks:        cat.Len(),
		CompletedChapters: CompletedChapters(r, cat),
		TotalChapters:     cat.TotalChapters(),
		TotalWords:        cat.TotalWordCount(),
		CurrentPlace:      r.CurrentPlace,
		LastUpdated:       r.LastUpdated,
	}
	for _, b := range cat.Books() {
		switch Classify(r, b) {
		case StatusFull:
			s.CompletedBooks++
		case StatusPartial:
			s.PartialBooks++
		}
	}
	if b, ok := LastCompleted(r, cat); ok {
		s.LastCompleted = b.Name
	}
	return s
}

// LastCompleted picks the fully completed book with the latest completion
// date. Books without a date rank below dated ones; among undated books the
// one latest in reading order wins.
func LastCompleted(r progress.Record, cat *catalog.Catalog) (catalog.Book, bool) {
	var (
		best     catalog.Book
		bestDate string
		found    bool
	)
	for _, b := range cat.Books() {
		if Classify(r, b) != StatusFull {
			continue
		}
		date, _ := r.CompletionDate(b.ID)
		// ISO-8601 dates order lexically.
		if !found || date >= bestDate {
			best, bestDate, found = b, date, true
		}
	}
	return best, found
}
