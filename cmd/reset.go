package cmd

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/scripturesteps/internal/tracker"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress, favorites, dates and the current place",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

// huhConfirm asks the question on the terminal.
var huhConfirm = tracker.ConfirmFunc(func(prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Clear everything").
			Negative("Keep my progress").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
})

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	confirm := huhConfirm
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		confirm = tracker.AlwaysConfirm
	}

	_, err = a.session.Reset(cmd.Context(), confirm)
	if errors.Is(err, tracker.ErrResetDeclined) {
		a.printer.Info("reset cancelled; nothing changed")
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		a.printer.Info("reset aborted; nothing changed")
		return nil
	}
	return a.saved(err, "all progress cleared")
}
