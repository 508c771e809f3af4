package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/giovaniif/stock-dashboard/domain/item"
	"github.com/giovaniif/stock-dashboard/infra/config"
	"github.com/giovaniif/stock-dashboard/infra/logging"
	"github.com/giovaniif/stock-dashboard/infra/metrics"
	"github.com/giovaniif/stock-dashboard/infra/repositories"
	"github.com/giovaniif/stock-dashboard/infra/requestid"
	"github.com/giovaniif/stock-dashboard/infra/tracing"
	"github.com/giovaniif/stock-dashboard/use_cases/status"
)

const (
	StockPath         = "/api/items/stock"
	serverErrorBody   = "Server error"
	healthPingTimeout = 2 * time.Second
)

type ItemRepository interface {
	item.Repository
	Ping(ctx context.Context) error
}

func NewRouter(itemRepository ItemRepository, logger zerolog.Logger) *gin.Engine {
	statusUseCase := status.NewStatus(itemRepository)

	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware(), tracing.Middleware(), metrics.Middleware, logging.Middleware(logger))
	metrics.Register(r)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		state, dbCheck := "healthy", "up"
		if err := itemRepository.Ping(ctx); err != nil {
			state, dbCheck = "degraded", "down"
		}
		c.JSON(http.StatusOK, gin.H{"status": state, "checks": gin.H{"db": dbCheck}})
	})

	r.GET(StockPath, func(c *gin.Context) {
		rows, err := statusUseCase.GetStockStatus(c.Request.Context())
		if err != nil {
			metrics.AggregationErrors.Inc()
			logger.Error().
				Err(err).
				Str("request_id", requestid.FromContext(c.Request.Context())).
				Msg("failed to get stock status")
			c.String(http.StatusInternalServerError, serverErrorBody)
			return
		}
		metrics.ObserveStatus(rows)
		c.JSON(http.StatusOK, rows)
	})

	return r
}

// OpenItemRepository builds the repository selected by DB_DRIVER. The returned
// closer releases the database handle.
func OpenItemRepository(ctx context.Context, cfg config.Config) (ItemRepository, func() error, error) {
	if cfg.DBDriver == repositories.DriverMemory {
		repo := repositories.NewItemRepositoryMemory(repositories.DemoStock, repositories.DemoIssues)
		return repo, func() error { return nil }, nil
	}

	db, err := repositories.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBDriver == repositories.DriverSQLite || cfg.SeedDemo {
		if err := repositories.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.SeedDemo {
		if err := repositories.Seed(ctx, db, cfg.DBDriver); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}
	return repositories.NewItemRepository(db), db.Close, nil
}

// StartServer serves the stock API until ctx is canceled, then drains
// in-flight requests.
func StartServer(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	shutdownTracing := tracing.Init(cfg.ServiceName)
	defer shutdownTracing(context.Background())

	itemRepository, closeRepository, err := OpenItemRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepository()

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(itemRepository, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           cors.AllowAll().Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("driver", cfg.DBDriver).Msg("stock dashboard API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Warn().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
