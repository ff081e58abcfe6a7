package progress

import (
	"slices"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
)

// FavoriteChapters groups the favorited chapters of one book.
type FavoriteChapters struct {
	Book     catalog.Book
	Chapters []int
}

// FavoritesIndex is the favorites view of a record, in catalog order.
type FavoritesIndex struct {
	Books    []catalog.Book
	Chapters []FavoriteChapters
}

// Empty reports whether the index holds no favorites at all.
func (f FavoritesIndex) Empty() bool {
	return len(f.Books) == 0 && len(f.Chapters) == 0
}

// HasFavorites reports whether r has any favorited book or chapter.
func HasFavorites(r Record) bool {
	if len(r.FavoritedBooks) > 0 {
		return true
	}
	for _, chs := range r.FavoritedChapters {
		if len(chs) > 0 {
			return true
		}
	}
	return false
}

// Favorites builds the favorites index of r against cat. IDs missing from
// the catalog and books with an empty chapter list are skipped.
func Favorites(r Record, cat *catalog.Catalog) FavoritesIndex {
	var idx FavoritesIndex
	for _, b := range cat.Books() {
		if r.IsBookFavorite(b.ID) {
			idx.Books = append(idx.Books, b)
		}
		if chs := r.FavoritedChapters[b.ID]; len(chs) > 0 {
			sorted := slices.Clone(chs)
			slices.Sort(sorted)
			idx.Chapters = append(idx.Chapters, FavoriteChapters{Book: b, Chapters: sorted})
		}
	}
	return idx
}
