package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/scripturesteps/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books with their reading status",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <book>",
	Short: "Show one book's chapters, favorites and date",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "only books whose name contains this text")
	listCmd.Flags().StringP("testament", "t", "all", "all, old or new")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search")
	testamentFlag, _ := cmd.Flags().GetString("testament")
	t, err := catalog.ParseTestament(testamentFlag)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	a.printer.BookList(a.cat.Filter(search, t), a.session.Record())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.book(args[0])
	if err != nil {
		return err
	}
	a.printer.Book(b, a.session.Record())
	return nil
}
