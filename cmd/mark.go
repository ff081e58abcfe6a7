package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
	"github.com/papapumpkin/scripturesteps/internal/progress"
)

var markCmd = &cobra.Command{
	Use:   "mark <book> <chapter|from-to>...",
	Short: "Toggle chapters as read",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMark,
}

var bookCmd = &cobra.Command{
	Use:   "book <book>",
	Short: "Mark a whole book read, or clear it if already read",
	Args:  cobra.ExactArgs(1),
	RunE:  runBook,
}

var favCmd = &cobra.Command{
	Use:   "fav <book> [chapter]",
	Short: "Toggle a favorite book or chapter",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runFav,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite books and chapters",
	Args:  cobra.NoArgs,
	RunE:  runFavorites,
}

var dateCmd = &cobra.Command{
	Use:   "date <book> [YYYY-MM-DD]",
	Short: "Record when a book was finished (default today)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDate,
}

var placeCmd = &cobra.Command{
	Use:   "place [<book> <chapter> <verse>]",
	Short: "Show or set the current reading place",
	Args: func(cmd *cobra.Command, args []string) error {
		if n := len(args); n != 0 && n != 3 {
			return fmt.Errorf("place takes no arguments or <book> <chapter> <verse>, got %d", n)
		}
		return nil
	},
	RunE: runPlace,
}

func init() {
	dateCmd.Flags().Bool("clear", false, "remove the recorded date")
	placeCmd.Flags().Bool("clear", false, "remove the current place")

	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(dateCmd)
	rootCmd.AddCommand(placeCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	chapters, err := parseChapters(b, args[1:])
	if err != nil {
		a.printer.Error(err.Error())
		return err
	}

	var saveErr error
	for _, ch := range chapters {
		if _, err := a.session.ToggleChapter(cmd.Context(), b.ID, ch); err != nil {
			saveErr = err
		}
	}
	if err := a.saved(saveErr, fmt.Sprintf("toggled %d chapter(s) of %s", len(chapters), b.Name)); err != nil {
		return err
	}
	a.printer.Book(b, a.session.Record())
	return nil
}

func runBook(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	r, err := a.session.ToggleBook(cmd.Context(), b.ID)
	state := "cleared"
	if len(r.Completed(b.ID)) == b.Chapters {
		state = "marked read"
	}
	return a.saved(err, fmt.Sprintf("%s %s", b.Name, state))
}

func runFav(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		r, err := a.session.ToggleFavoriteBook(cmd.Context(), b.ID)
		return a.saved(err, favMessage(b.Name, r.IsBookFavorite(b.ID)))
	}

	chapters, err := parseChapters(b, args[1:])
	if err != nil || len(chapters) != 1 {
		if err == nil {
			err = fmt.Errorf("fav takes a single chapter")
		}
		a.printer.Error(err.Error())
		return err
	}
	ch := chapters[0]
	r, err := a.session.ToggleFavoriteChapter(cmd.Context(), b.ID, ch)
	return a.saved(err, favMessage(fmt.Sprintf("%s %d", b.Name, ch), r.IsChapterFavorite(b.ID, ch)))
}

func favMessage(what string, on bool) string {
	if on {
		return what + " added to favorites"
	}
	return what + " removed from favorites"
}

func runFavorites(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	a.printer.Favorites(progress.Favorites(a.session.Record(), a.cat))
	return nil
}

func runDate(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	date := time.Now().Format(time.DateOnly)
	if len(args) == 2 {
		if clearFlag {
			return fmt.Errorf("date: give a date or --clear, not both")
		}
		if _, err := time.Parse(time.DateOnly, args[1]); err != nil {
			return fmt.Errorf("date: %q is not YYYY-MM-DD", args[1])
		}
		date = args[1]
	}
	if clearFlag {
		date = ""
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	_, err = a.session.SetCompletionDate(cmd.Context(), b.ID, date)
	if date == "" {
		return a.saved(err, fmt.Sprintf("cleared completion date of %s", b.Name))
	}
	return a.saved(err, fmt.Sprintf("%s finished on %s", b.Name, date))
}

func runPlace(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	switch {
	case clearFlag:
		_, err := a.session.ClearCurrentPlace(cmd.Context())
		return a.saved(err, "current place cleared")
	case len(args) == 0:
		cp := a.session.Record().CurrentPlace
		name := ""
		if cp != nil {
			if b, ok := a.cat.Lookup(cp.BookID); ok {
				name = b.Name
			}
		}
		a.printer.Place(cp, name)
		return nil
	}

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	ch, err1 := strconv.Atoi(args[1])
	verse, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("place: chapter and verse must be numbers")
	}
	p := progress.ClampPlace(b, ch, verse, a.cfg.MaxVerses)
	_, err = a.session.SetCurrentPlace(cmd.Context(), p)
	return a.saved(err, fmt.Sprintf("reading at %s %d:%d", b.Name, p.Chapter, p.Verse))
}

// parseChapters reads chapter numbers and inclusive ranges ("3", "5-8")
// and checks each against the book.
func parseChapters(b catalog.Book, args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		from, to, isRange := strings.Cut(arg, "-")
		lo, err := strconv.Atoi(from)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter %q", arg)
		}
		hi := lo
		if isRange {
			if hi, err = strconv.Atoi(to); err != nil || hi < lo {
				return nil, fmt.Errorf("invalid chapter range %q", arg)
			}
		}
		if lo < 1 || hi > b.Chapters {
			return nil, fmt.Errorf("%s has chapters 1-%d, got %q", b.Name, b.Chapters, arg)
		}
		for ch := lo; ch <= hi; ch++ {
			out = append(out, ch)
		}
	}
	return out, nil
}
