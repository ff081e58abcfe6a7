package progress

import (
	"encoding/json"
	"fmt"
)

// Shape identifies which historical layout a stored record used.
type Shape int

const (
	// ShapeUnknown is an object carrying none of the known keys.
	ShapeUnknown Shape = iota
	// ShapeBooks is the first layout: a flat list of completed book IDs.
	ShapeBooks
	// ShapeChapters added per-chapter completion and favorites.
	ShapeChapters
	// ShapeCanonical is the current layout.
	ShapeCanonical
)

func (s Shape) String() string {
	switch s {
	case ShapeBooks:
		return "v1-books"
	case ShapeChapters:
		return "v2-chapters"
	case ShapeCanonical:
		return "v3-canonical"
	default:
		return "unknown"
	}
}

// booksRecord is the first stored layout.
type booksRecord struct {
	CompletedBookIDs []string `json:"completedBookIds"`
	LastUpdated      string   `json:"lastUpdated"`
}

// chaptersRecord is the second stored layout. It predates favorited books
// and the current place.
type chaptersRecord struct {
	CompletedChapters map[string][]int  `json:"completedChapters"`
	FavoritedChapters map[string][]int  `json:"favoritedChapters"`
	CompletedDates    map[string]string `json:"completedDates"`
	LastUpdated       string            `json:"lastUpdated"`
}

// Decode converts stored bytes in any known layout into the canonical
// record. The canonical layout is tried first, then the chapter layout,
// then the book-list layout. An object with none of their keys decodes to
// the empty record with ShapeUnknown. Malformed JSON is an error.
func Decode(data []byte, books Books) (Record, Shape, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Empty(), ShapeUnknown, fmt.Errorf("progress: decode: %w", err)
	}

	switch {
	case has(probe, "favoritedBooks") || has(probe, "currentPlace"):
		r, err := decodeCanonical(data)
		return r, ShapeCanonical, err
	case has(probe, "completedChapters"):
		r, err := decodeChapters(data)
		return r, ShapeChapters, err
	case has(probe, "completedBookIds"):
		r, err := decodeBooks(data, books)
		return r, ShapeBooks, err
	}
	return Empty(), ShapeUnknown, nil
}

func decodeCanonical(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Empty(), fmt.Errorf("progress: decode canonical: %w", err)
	}
	return r.withDefaults(), nil
}

func decodeChapters(data []byte) (Record, error) {
	var old chaptersRecord
	if err := json.Unmarshal(data, &old); err != nil {
		return Empty(), fmt.Errorf("progress: decode chapters: %w", err)
	}
	r := Record{
		CompletedChapters: old.CompletedChapters,
		FavoritedChapters: old.FavoritedChapters,
		CompletedDates:    old.CompletedDates,
		LastUpdated:       old.LastUpdated,
	}
	return r.withDefaults(), nil
}

func decodeBooks(data []byte, books Books) (Record, error) {
	var old booksRecord
	if err := json.Unmarshal(data, &old); err != nil {
		return Empty(), fmt.Errorf("progress: decode books: %w", err)
	}
	r := Empty()
	r.LastUpdated = old.LastUpdated
	for _, id := range old.CompletedBookIDs {
		b, ok := books.Lookup(id)
		if !ok {
			continue
		}
		r.CompletedChapters[id] = FullRange(b.Chapters)
	}
	return r, nil
}

// Encode serializes r in the canonical layout.
func Encode(r Record) ([]byte, error) {
	data, err := json.Marshal(r.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("progress: encode: %w", err)
	}
	return data, nil
}

func has(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}
