package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/scripturesteps/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve progress over a local JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8650)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	h := server.NewHandler(a.session, a.reflector(), a.cfg.MaxVerses, a.log)
	a.printer.Info("serving on http://" + a.cfg.Server.Addr)
	return server.ListenAndServe(ctx, a.cfg.Server.Addr, server.Routes(h, a.registry), a.log, nil)
}
