package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/giovaniif/stock-dashboard/infra/config"
	"github.com/giovaniif/stock-dashboard/infra/logging"
)

var (
	cfg        config.Config
	logger     zerolog.Logger
	closeLog   = func() {}
	logLevel   string
	logFile    string
	logFileOut *os.File
)

var rootCmd = &cobra.Command{
	Use:   "stockdash",
	Short: "Inventory stock dashboard",
	Long: `stockdash aggregates stock and issue records into a per-item balance.

"serve" exposes the aggregation over HTTP, "watch" polls it and renders a
live terminal dashboard, "status" prints it once.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		var out io.Writer = os.Stdout
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logFileOut = f
			out = f
		} else if cmd == watchCmd {
			// The dashboard owns the terminal.
			out = io.Discard
		}

		logger, closeLog = logging.Setup(logging.Options{
			Level:       cfg.LogLevel,
			Format:      cfg.LogFormat,
			LokiURL:     cfg.LokiURL,
			ServiceName: cfg.ServiceName,
			Out:         out,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
		if logFileOut != nil {
			_ = logFileOut.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stdout")

	rootCmd.AddCommand(serveCmd, watchCmd, statusCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
