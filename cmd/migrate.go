package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite stored progress in the current format",
	Long:  "Reads the slot in whichever historical format it holds and writes it back in the current one. Running it twice is harmless.",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	from, err := a.store.Migrate(cmd.Context())
	if err != nil {
		a.printer.Error(err.Error())
		return err
	}
	a.printer.Migrated(from)
	return nil
}
