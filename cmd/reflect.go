package cmd

import (
	"github.com/spf13/cobra"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Ask for a short word of encouragement about your progress",
	Args:  cobra.NoArgs,
	RunE:  runReflect,
}

func init() {
	rootCmd.AddCommand(reflectCmd)
}

func runReflect(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s := a.session.Summary()
	a.printer.Reflection(a.reflector().Request(cmd.Context(), s.CompletedBooks, s.TotalBooks, s.LastCompleted))
	return nil
}
