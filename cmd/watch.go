package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/scripturesteps/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the summary every time the progress file changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !isFileBackend(a.cfg.Storage.Backend) {
		return fmt.Errorf("watch: only the file backend can be watched, not %q", a.cfg.Storage.Backend)
	}
	w, err := watch.New(a.cfg.Storage.Path, watch.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Stop()
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	a.printer.Summary(a.session.Summary())
	a.printer.Info("watching " + w.File)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if c.Removed {
				a.printer.Info("progress file removed")
			}
			a.session.Reload(ctx)
			fmt.Fprintln(cmd.OutOrStdout())
			a.printer.Summary(a.session.Summary())
		}
	}
}
