package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giovaniif/stock-dashboard/domain/item"
)

const metricsPath = "/metrics"

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	StatusItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stock_status_items",
			Help: "Number of items per stock status in the last aggregation",
		},
		[]string{"status"},
	)
	AggregationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_aggregation_errors_total",
			Help: "Total number of failed stock aggregations",
		},
	)
)

// Path labels use the route template so label cardinality stays bounded.
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

func Middleware(c *gin.Context) {
	if c.Request.URL.Path == metricsPath {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	duration := time.Since(start).Seconds()
	path := routeLabel(c)
	status := strconv.Itoa(c.Writer.Status())
	RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}

// ObserveStatus replaces the per-status gauges with the counts found in rows.
func ObserveStatus(rows []item.StockRow) {
	counts := map[item.Status]float64{
		item.StatusCritical: 0,
		item.StatusLow:      0,
		item.StatusGood:     0,
	}
	for _, r := range rows {
		counts[r.Status()]++
	}
	for s, n := range counts {
		StatusItems.WithLabelValues(string(s)).Set(n)
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func Register(r *gin.Engine) {
	r.GET(metricsPath, Handler())
}
