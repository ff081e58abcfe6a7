// Package catalog holds the static corpus the tracker measures progress
// against: an ordered list of books, each with a chapter count and an
// approximate word count used for weighting.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for catalog lookup and loading.
var (
	// ErrUnknownBook indicates a book reference matched no catalog entry.
	ErrUnknownBook = errors.New("unknown book")
	// ErrUnknownTestament indicates an unrecognized testament filter value.
	ErrUnknownTestament = errors.New("unknown testament")
	// ErrDuplicateID indicates two catalog entries share the same ID.
	ErrDuplicateID = errors.New("duplicate book ID")
	// ErrTotalMismatch indicates a declared total word count disagrees with the books.
	ErrTotalMismatch = errors.New("total word count does not match books")
)

// Testament groups books into the two halves of the canon.
type Testament string

const (
	OldTestament Testament = "Old Testament"
	NewTestament Testament = "New Testament"

	// AllTestaments is the wildcard filter value.
	AllTestaments Testament = ""
)

// ParseTestament accepts the short forms used on the command line
// ("old", "ot", "new", "nt", "all") as well as the full names.
func ParseTestament(s string) (Testament, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "entire", "bible":
		return AllTestaments, nil
	case "old", "ot", "old testament":
		return OldTestament, nil
	case "new", "nt", "new testament":
		return NewTestament, nil
	}
	return AllTestaments, fmt.Errorf("%w: %q", ErrUnknownTestament, s)
}

// UnmarshalText lets catalog files spell testaments in short form.
func (t *Testament) UnmarshalText(text []byte) error {
	parsed, err := ParseTestament(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Label returns a display name, "Entire Bible" for the wildcard.
func (t Testament) Label() string {
	if t == AllTestaments {
		return "Entire Bible"
	}
	return string(t)
}

// Book is one entry of the corpus.
type Book struct {
	ID        string    `toml:"id" json:"id" validate:"required"`
	Name      string    `toml:"name" json:"name" validate:"required"`
	Testament Testament `toml:"testament" json:"testament" validate:"oneof='Old Testament' 'New Testament'"`
	Chapters  int       `toml:"chapters" json:"chapters" validate:"min=1"`
	WordCount int       `toml:"word_count" json:"wordCount" validate:"gt=0"`
}

// Catalog is an immutable, ordered set of books with an index by ID.
type Catalog struct {
	books []Book
	index map[string]int
	total int
}

// New builds a catalog from books in reading order. total is the
// precomputed word count across all books.
func New(books []Book, total int) *Catalog {
	c := &Catalog{
		books: books,
		index: make(map[string]int, len(books)),
		total: total,
	}
	for i, b := range books {
		c.index[b.ID] = i
	}
	return c
}

// Books returns the books in reading order. Callers must not modify the slice.
func (c *Catalog) Books() []Book { return c.books }

// Len returns the number of books.
func (c *Catalog) Len() int { return len(c.books) }

// TotalWordCount returns the precomputed word count across all books.
func (c *Catalog) TotalWordCount() int { return c.total }

// TotalChapters returns the number of chapters across all books.
func (c *Catalog) TotalChapters() int {
	n := 0
	for _, b := range c.books {
		n += b.Chapters
	}
	return n
}

// Lookup returns the book with the given ID.
func (c *Catalog) Lookup(id string) (Book, bool) {
	i, ok := c.index[id]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Position returns the reading-order index of a book, or -1.
func (c *Catalog) Position(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// Resolve finds a book by ID or by name, ignoring case and repeated
// whitespace, so "1 samuel", "1sa" and "1  Samuel" all match.
func (c *Catalog) Resolve(ref string) (Book, error) {
	if b, ok := c.Lookup(ref); ok {
		return b, nil
	}
	want := normalize(ref)
	for _, b := range c.books {
		if strings.ToLower(b.ID) == want || normalize(b.Name) == want {
			return b, nil
		}
	}
	return Book{}, fmt.Errorf("%w: %q", ErrUnknownBook, ref)
}

// Filter returns the catalog books matching term and testament.
func (c *Catalog) Filter(term string, t Testament) []Book {
	return Filter(c.books, term, t)
}

// Filter keeps books whose name contains term (case-insensitive) and whose
// testament equals t. AllTestaments matches every book; an empty term
// matches every name.
func Filter(books []Book, term string, t Testament) []Book {
	needle := strings.ToLower(term)
	var out []Book
	for _, b := range books {
		if !strings.Contains(strings.ToLower(b.Name), needle) {
			continue
		}
		if t != AllTestaments && b.Testament != t {
			continue
		}
		out = append(out, b)
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
