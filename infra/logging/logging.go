package logging

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/giovaniif/stock-dashboard/infra/loki"
	"github.com/giovaniif/stock-dashboard/infra/requestid"
)

type Options struct {
	Level       string
	Format      string
	LokiURL     string
	ServiceName string
	// Out defaults to stdout.
	Out io.Writer
}

// Setup configures the global zerolog logger and returns a closer for the
// Loki writer, which is a no-op when Loki is not configured.
func Setup(opts Options) (zerolog.Logger, func()) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	closer := func() {}
	if w := loki.NewWriter(opts.LokiURL, map[string]string{"job": opts.ServiceName}); w != nil {
		out = zerolog.MultiLevelWriter(out, w)
		closer = func() { _ = w.Close() }
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger()
	log.Logger = logger
	return logger, closer
}

// Middleware logs one line per request with the request id set by requestid.Middleware.
func Middleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}
		event.
			Str("request_id", requestid.FromContext(c.Request.Context())).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
