package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/scripturesteps/internal/store"
	"github.com/papapumpkin/scripturesteps/internal/tui"
	"github.com/papapumpkin/scripturesteps/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and mark progress in an interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().Bool("no-watch", false, "do not reload when the progress file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	p := tui.NewProgram(ctx, a.session, a.reflector(), a.cfg.MaxVerses)

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if !noWatch && isFileBackend(a.cfg.Storage.Backend) {
		w, err := watch.New(a.cfg.Storage.Path, watch.WithLogger(a.log))
		if err == nil {
			if err = w.Start(); err != nil {
				w.Stop()
			}
		}
		if err != nil {
			a.log.Warn("not watching progress file", zap.Error(err))
		} else {
			defer w.Stop()
			go func() {
				for range w.Changes {
					p.Send(tui.MsgReload{})
				}
			}()
		}
	}

	_, err = p.Run()
	return err
}

func isFileBackend(backend string) bool {
	return backend == "" || backend == store.BackendFile
}
