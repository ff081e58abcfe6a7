// Package ui renders progress for the command line. Data goes to the
// printer's output stream; status lines and errors go to stderr.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/scripturesteps/internal/ansi"
	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
	"github.com/papapumpkin/scripturesteps/internal/stats"
)

const (
	reset   = ansi.Reset
	bold    = ansi.Bold
	dim     = ansi.Dim
	yellow  = ansi.Yellow
	green   = ansi.Green
	red     = ansi.Red
	cyan    = ansi.Cyan
	magenta = ansi.Magenta
)

// barWidth is the width of the overall progress bar.
const barWidth = 30

// gridColumns is the number of chapters per row in a book's grid.
const gridColumns = 10

type Printer struct {
	out io.Writer
	err io.Writer
}

func New() *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr}
}

// NewWithWriters returns a Printer writing data to out and diagnostics to errw.
func NewWithWriters(out, errw io.Writer) *Printer {
	return &Printer{out: out, err: errw}
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.err, bold+cyan+"  ╔═══════════════════════════════════╗"+reset)
	fmt.Fprintln(p.err, bold+cyan+"  ║"+reset+bold+"   SCRIPTURESTEPS  "+dim+"reading tracker"+reset+bold+cyan+" ║"+reset)
	fmt.Fprintln(p.err, bold+cyan+"  ╚═══════════════════════════════════╝"+reset)
	fmt.Fprintln(p.err)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.err, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.err, dim+"%s"+reset+"\n", msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.err, green+bold+"✓ "+reset+"%s\n", msg)
}

// Summary prints the headline figures.
func (p *Printer) Summary(s stats.Summary) {
	fmt.Fprintf(p.out, bold+"Progress"+reset+"  %s "+bold+"%.1f%%"+reset+"\n",
		green+ansi.Bar(s.Percentage, barWidth)+reset, s.Percentage)
	fmt.Fprintf(p.out, "  Old Testament:  %5.1f%%\n", s.OldPercentage)
	fmt.Fprintf(p.out, "  New Testament:  %5.1f%%\n", s.NewPercentage)
	fmt.Fprintf(p.out, "  books:          %d/%d complete, %d in progress\n", s.CompletedBooks, s.TotalBooks, s.PartialBooks)
	fmt.Fprintf(p.out, "  chapters:       %d/%d\n", s.CompletedChapters, s.TotalChapters)
	if s.LastCompleted != "" {
		fmt.Fprintf(p.out, "  last finished:  %s\n", s.LastCompleted)
	}
	if s.CurrentPlace != nil {
		fmt.Fprintf(p.out, "  reading at:     %s %d:%d\n", s.CurrentPlace.BookID, s.CurrentPlace.Chapter, s.CurrentPlace.Verse)
	}
	if s.LastUpdated != "" {
		fmt.Fprintf(p.out, dim+"  updated %s"+reset+"\n", s.LastUpdated)
	}
}

// BookList prints one line per book with its status and chapter count.
func (p *Printer) BookList(books []catalog.Book, r progress.Record) {
	if len(books) == 0 {
		fmt.Fprintln(p.out, dim+"  (no books match)"+reset)
		return
	}
	var section catalog.Testament
	for _, b := range books {
		if b.Testament != section {
			section = b.Testament
			fmt.Fprintf(p.out, "\n"+bold+magenta+"── %s ──"+reset+"\n", section.Label())
		}
		symbol, color := statusGlyph(stats.Classify(r, b))
		fav := " "
		if r.IsBookFavorite(b.ID) {
			fav = yellow + "★" + reset
		}
		done := len(r.Completed(b.ID))
		line := fmt.Sprintf("  "+color+"%s"+reset+" %s %-4s %-16s %3d/%-3d", symbol, fav, b.ID, b.Name, done, b.Chapters)
		if d, ok := r.CompletionDate(b.ID); ok {
			line += dim + "  " + d + reset
		}
		fmt.Fprintln(p.out, line)
	}
}

// Book prints the detail view of one book: status, date and a chapter grid.
func (p *Printer) Book(b catalog.Book, r progress.Record) {
	status := stats.Classify(r, b)
	symbol, color := statusGlyph(status)
	fmt.Fprintf(p.out, bold+cyan+"%s"+reset+dim+" (%s, %s)"+reset+"\n", b.Name, b.ID, b.Testament)
	fmt.Fprintf(p.out, "  status: "+color+"%s %s"+reset+"  %.0f%% of chapters\n", symbol, status, stats.BookFraction(r, b)*100)
	if r.IsBookFavorite(b.ID) {
		fmt.Fprintln(p.out, "  "+yellow+"★ favorite book"+reset)
	}
	if d, ok := r.CompletionDate(b.ID); ok {
		fmt.Fprintf(p.out, "  finished: %s\n", d)
	}
	if cp := r.CurrentPlace; cp != nil && cp.BookID == b.ID {
		fmt.Fprintf(p.out, "  reading at %d:%d\n", cp.Chapter, cp.Verse)
	}
	fmt.Fprintln(p.out)
	fmt.Fprint(p.out, ChapterGrid(b, r))
}

// ChapterGrid renders a book's chapters in rows. Completed chapters are
// green, favorites carry a star.
func ChapterGrid(b catalog.Book, r progress.Record) string {
	var sb strings.Builder
	for ch := 1; ch <= b.Chapters; ch++ {
		if (ch-1)%gridColumns == 0 {
			sb.WriteString("  ")
		}
		cell := fmt.Sprintf("%3d", ch)
		if r.IsChapterComplete(b.ID, ch) {
			cell = green + bold + cell + reset
		} else {
			cell = dim + cell + reset
		}
		if r.IsChapterFavorite(b.ID, ch) {
			cell += yellow + "★" + reset
		} else {
			cell += " "
		}
		sb.WriteString(cell)
		if ch%gridColumns == 0 || ch == b.Chapters {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Favorites prints the favorites index.
func (p *Printer) Favorites(idx progress.FavoritesIndex) {
	if idx.Empty() {
		fmt.Fprintln(p.out, dim+"No favorites yet. Star a book or chapter to see it here."+reset)
		return
	}
	if len(idx.Books) > 0 {
		fmt.Fprintln(p.out, bold+"Favorite books"+reset)
		for _, b := range idx.Books {
			fmt.Fprintf(p.out, "  "+yellow+"★"+reset+" %-16s "+dim+"%s, %d chapters"+reset+"\n", b.Name, b.Testament, b.Chapters)
		}
	}
	if len(idx.Chapters) > 0 {
		if len(idx.Books) > 0 {
			fmt.Fprintln(p.out)
		}
		fmt.Fprintln(p.out, bold+"Favorite chapters"+reset)
		for _, fc := range idx.Chapters {
			nums := make([]string, len(fc.Chapters))
			for i, ch := range fc.Chapters {
				nums[i] = fmt.Sprintf("%d", ch)
			}
			fmt.Fprintf(p.out, "  %-16s %s\n", fc.Book.Name, strings.Join(nums, ", "))
		}
	}
}

// Place prints the current reading position, if any.
func (p *Printer) Place(cp *progress.Place, bookName string) {
	if cp == nil {
		fmt.Fprintln(p.out, dim+"No current place set."+reset)
		return
	}
	if bookName == "" {
		bookName = cp.BookID
	}
	fmt.Fprintf(p.out, "reading at "+bold+"%s %d:%d"+reset+"\n", bookName, cp.Chapter, cp.Verse)
}

// Reflection prints an encouragement message.
func (p *Printer) Reflection(text string) {
	fmt.Fprintln(p.out, cyan+"❝ "+reset+text)
}

// Migrated reports the outcome of rewriting the slot in canonical form.
func (p *Printer) Migrated(from progress.Shape) {
	switch from {
	case progress.ShapeCanonical:
		p.Info("progress already in current format")
	case progress.ShapeUnknown:
		p.Info("no stored progress; wrote an empty record")
	default:
		p.Success(fmt.Sprintf("migrated progress from %s to %s", from, progress.ShapeCanonical))
	}
}

func statusGlyph(s stats.Status) (string, string) {
	switch s {
	case stats.StatusFull:
		return "●", green
	case stats.StatusPartial:
		return "◐", yellow
	default:
		return "○", dim
	}
}
