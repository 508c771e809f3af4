package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/giovaniif/stock-dashboard/cmd/stockdash/ui"
	"github.com/giovaniif/stock-dashboard/domain/item"
	"github.com/giovaniif/stock-dashboard/infra/config"
	"github.com/giovaniif/stock-dashboard/infra/gateways"
	"github.com/giovaniif/stock-dashboard/protocols"
	"github.com/giovaniif/stock-dashboard/use_cases/alert"
	"github.com/giovaniif/stock-dashboard/use_cases/watch"
)

var (
	watchURL      string
	watchInterval time.Duration
	watchAlerts   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live terminal dashboard that refreshes on an interval",
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "stock endpoint (defaults to STOCK_API_URL)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "refresh interval (defaults to POLL_INTERVAL)")
	watchCmd.Flags().BoolVar(&watchAlerts, "alerts", true, "publish low stock alerts for CRITICAL items")
}

func stockGateway(url string) *gateways.StockGatewayHttp {
	if url == "" {
		url = cfg.StockAPIURL
	}
	return gateways.NewStockGatewayHttp(&http.Client{Timeout: cfg.FetchTimeout}, url)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.PollInterval
	}
	poller := watch.NewPoller(stockGateway(watchURL), interval, logger)

	if watchAlerts {
		notifier, closeAlerts := newAlertNotifier(ctx, cfg, logger)
		defer closeAlerts()
		poller.Subscribe(func(rows []item.StockRow, _ time.Time) {
			sent, err := notifier.Notify(ctx, rows)
			if err != nil {
				logger.Error().Err(err).Msg("low stock alerts failed")
			}
			if sent > 0 {
				logger.Info().Int("alerts", sent).Msg("low stock alerts published")
			}
		})
	}

	program := tea.NewProgram(ui.NewModel(poller.Interval()), tea.WithAltScreen(), tea.WithContext(ctx))
	poller.Subscribe(func(rows []item.StockRow, updatedAt time.Time) {
		program.Send(ui.RowsMsg{Rows: rows, UpdatedAt: updatedAt})
	})

	poller.Start(ctx)
	defer poller.Stop()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newAlertNotifier picks Redis and Kafka when configured and falls back to
// in-memory de-duplication and log publication otherwise.
func newAlertNotifier(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*alert.Alert, func()) {
	var closers []func()

	var deduper protocols.AlertDeduper = gateways.NewAlertDeduperMemory(cfg.AlertCooldown)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed, using in-memory alert de-duplication")
			_ = rdb.Close()
		} else {
			deduper = gateways.NewAlertDeduperRedis(rdb, cfg.AlertCooldown)
			closers = append(closers, func() { _ = rdb.Close() })
			logger.Info().Str("addr", cfg.RedisAddr).Dur("cooldown", cfg.AlertCooldown).Msg("alert de-duplication: redis")
		}
	}

	var publisher protocols.AlertPublisher = gateways.NewAlertPublisherLog(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := gateways.NewAlertPublisherKafka(cfg.KafkaBrokers, cfg.AlertTopic)
		publisher = kafkaPublisher
		closers = append(closers, func() { _ = kafkaPublisher.Close() })
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.AlertTopic).Msg("alert publication: kafka")
	}

	return alert.NewAlert(publisher, deduper), func() {
		for _, c := range closers {
			c()
		}
	}
}
