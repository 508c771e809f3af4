package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giovaniif/stock-dashboard/cmd/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stock aggregation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := api.StartServer(ctx, cfg, logger); err != nil {
			logger.Error().Err(err).Msg("server stopped")
			return err
		}
		logger.Info().Msg("server exited")
		return nil
	},
}
