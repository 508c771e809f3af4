package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/giovaniif/stock-dashboard/cmd/stockdash/ui"
)

var (
	statusURL  string
	statusJSON bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Fetch the stock status once and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
		defer cancel()

		rows, err := stockGateway(statusURL).FetchStock(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("fetch stock status")
			return err
		}

		out := cmd.OutOrStdout()
		if statusJSON {
			return writeJSON(out, rows)
		}
		fmt.Fprintln(out, ui.NewRenderer().Snapshot(rows, cfg.PollInterval, time.Now()))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusURL, "url", "", "stock endpoint (defaults to STOCK_API_URL)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the raw rows as JSON")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
