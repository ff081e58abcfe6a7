package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// fileCatalog is the TOML layout of a catalog override file:
//
//	total_word_count = 1234
//
//	[[books]]
//	id = "gen"
//	name = "Genesis"
//	testament = "old"
//	chapters = 50
//	word_count = 38262
type fileCatalog struct {
	TotalWordCount int    `toml:"total_word_count" validate:"gte=0"`
	Books          []Book `toml:"books" validate:"required,min=1,dive"`
}

// Load returns the built-in catalog when path is empty, otherwise the
// catalog defined by the TOML file at path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Bible(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a TOML catalog file. When the file omits
// total_word_count it is computed from the books; when present it must
// equal their sum.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("catalog: parsing: %w", err)
	}
	if err := validator.New().Struct(fc); err != nil {
		return nil, fmt.Errorf("catalog: validating: %w", err)
	}

	seen := make(map[string]bool, len(fc.Books))
	sum := 0
	for _, b := range fc.Books {
		if seen[b.ID] {
			return nil, fmt.Errorf("catalog: %w: %q", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = true
		sum += b.WordCount
	}

	total := fc.TotalWordCount
	if total == 0 {
		total = sum
	} else if total != sum {
		return nil, fmt.Errorf("catalog: %w: declared %d, books sum to %d", ErrTotalMismatch, total, sum)
	}
	return New(fc.Books, total), nil
}
