package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/scripturesteps/internal/stats"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show overall and per-testament progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "output the summary as JSON to stdout")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	summary := a.session.Summary()
	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		return writeSummaryJSON(cmd.OutOrStdout(), summary)
	}
	a.printer.Summary(summary)
	return nil
}

func writeSummaryJSON(w io.Writer, s stats.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
