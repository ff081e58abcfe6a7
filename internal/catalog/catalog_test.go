package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBibleTotals(t *testing.T) {
	t.Parallel()
	c := Bible()

	if c.Len() != 66 {
		t.Errorf("Len() = %d, want 66", c.Len())
	}
	if got := c.TotalChapters(); got != 1189 {
		t.Errorf("TotalChapters() = %d, want 1189", got)
	}

	sum := 0
	old := 0
	for _, b := range c.Books() {
		sum += b.WordCount
		if b.Testament == OldTestament {
			old++
		}
	}
	if sum != c.TotalWordCount() {
		t.Errorf("sum of word counts = %d, TotalWordCount() = %d", sum, c.TotalWordCount())
	}
	if old != 39 {
		t.Errorf("old testament books = %d, want 39", old)
	}
}

func TestBibleIDsUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, b := range Bible().Books() {
		if seen[b.ID] {
			t.Errorf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
		if b.Chapters < 1 || b.WordCount <= 0 {
			t.Errorf("book %q has chapters=%d word_count=%d", b.ID, b.Chapters, b.WordCount)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	c := Bible()
	tests := []struct {
		ref    string
		wantID string
	}{
		{"gen", "gen"},
		{"Genesis", "gen"},
		{"genesis", "gen"},
		{"1 samuel", "1sa"},
		{"1   Samuel", "1sa"},
		{"SONG OF SOLOMON", "sng"},
		{"REV", "rev"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			b, err := c.Resolve(tt.ref)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.ref, err)
			}
			if b.ID != tt.wantID {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.ref, b.ID, tt.wantID)
			}
		})
	}

	if _, err := c.Resolve("Maccabees"); !errors.Is(err, ErrUnknownBook) {
		t.Errorf("Resolve(Maccabees) err = %v, want ErrUnknownBook", err)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()
	c := Bible()

	t.Run("testament with empty term", func(t *testing.T) {
		t.Parallel()
		got := c.Filter("", NewTestament)
		if len(got) != 27 {
			t.Fatalf("len = %d, want 27", len(got))
		}
		for _, b := range got {
			if b.Testament != NewTestament {
				t.Errorf("%s testament = %q", b.Name, b.Testament)
			}
		}
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		t.Parallel()
		got := c.Filter("gen", AllTestaments)
		if len(got) != 1 || got[0].Name != "Genesis" {
			t.Errorf("Filter(gen) = %v, want [Genesis]", got)
		}
	})

	t.Run("term and testament combine", func(t *testing.T) {
		t.Parallel()
		got := c.Filter("john", NewTestament)
		if len(got) != 4 {
			t.Errorf("Filter(john, NT) len = %d, want 4", len(got))
		}
		if got := c.Filter("john", OldTestament); len(got) != 0 {
			t.Errorf("Filter(john, OT) = %v, want none", got)
		}
	})

	t.Run("wildcard keeps catalog order", func(t *testing.T) {
		t.Parallel()
		got := c.Filter("", AllTestaments)
		if len(got) != 66 || got[0].ID != "gen" || got[65].ID != "rev" {
			t.Errorf("unexpected order or length: %d", len(got))
		}
	})
}

func TestParseTestament(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Testament
		err  bool
	}{
		{"", AllTestaments, false},
		{"all", AllTestaments, false},
		{"OLD", OldTestament, false},
		{"nt", NewTestament, false},
		{"New Testament", NewTestament, false},
		{"apocrypha", AllTestaments, true},
	}
	for _, tt := range tests {
		got, err := ParseTestament(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseTestament(%q) err = %v, wantErr %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseTestament(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("computes total when omitted", func(t *testing.T) {
		t.Parallel()
		data := `
[[books]]
id = "a"
name = "Alpha"
testament = "old"
chapters = 2
word_count = 100

[[books]]
id = "b"
name = "Beta"
testament = "New Testament"
chapters = 3
word_count = 50
`
		c, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if c.TotalWordCount() != 150 {
			t.Errorf("TotalWordCount() = %d, want 150", c.TotalWordCount())
		}
		b, ok := c.Lookup("b")
		if !ok || b.Testament != NewTestament || b.Chapters != 3 {
			t.Errorf("Lookup(b) = %+v, %v", b, ok)
		}
	})

	t.Run("rejects mismatched total", func(t *testing.T) {
		t.Parallel()
		data := `
total_word_count = 999
[[books]]
id = "a"
name = "Alpha"
testament = "old"
chapters = 1
word_count = 10
`
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrTotalMismatch) {
			t.Errorf("err = %v, want ErrTotalMismatch", err)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()
		data := `
[[books]]
id = "a"
name = "Alpha"
testament = "old"
chapters = 1
word_count = 10
[[books]]
id = "a"
name = "Again"
testament = "old"
chapters = 1
word_count = 10
`
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrDuplicateID) {
			t.Errorf("err = %v, want ErrDuplicateID", err)
		}
	})

	t.Run("rejects zero chapters", func(t *testing.T) {
		t.Parallel()
		data := `
[[books]]
id = "a"
name = "Alpha"
testament = "old"
chapters = 0
word_count = 10
`
		if _, err := Parse([]byte(data)); err == nil {
			t.Error("expected validation error for chapters = 0")
		}
	})

	t.Run("rejects unknown testament", func(t *testing.T) {
		t.Parallel()
		data := `
[[books]]
id = "a"
name = "Alpha"
testament = "middle"
chapters = 1
word_count = 10
`
		if _, err := Parse([]byte(data)); err == nil {
			t.Error("expected error for unknown testament")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if c.Len() != 66 {
		t.Errorf("default catalog Len() = %d, want 66", c.Len())
	}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	data := "[[books]]\nid = \"x\"\nname = \"Xenon\"\ntestament = \"nt\"\nchapters = 4\nword_count = 40\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if c.Len() != 1 || c.TotalChapters() != 4 {
		t.Errorf("Len=%d TotalChapters=%d", c.Len(), c.TotalChapters())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
