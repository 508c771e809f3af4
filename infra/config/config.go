package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	ServiceName string
	DBDriver    string
	DatabaseURL string
	SeedDemo    bool

	LogLevel  string
	LogFormat string
	LokiURL   string

	StockAPIURL  string
	PollInterval time.Duration
	FetchTimeout time.Duration

	RedisAddr     string
	KafkaBrokers  []string
	AlertTopic    string
	AlertCooldown time.Duration
}

const (
	ShutdownGrace = 10 * time.Second
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getenv("PORT", "3000"),
		ServiceName: getenv("SERVICE_NAME", "stock-dashboard"),
		DBDriver:    getenv("DB_DRIVER", "postgres"),
		DatabaseURL: getenv("DATABASE_URL", "postgres://localhost:5432/stock?sslmode=disable"),
		SeedDemo:    getenv("SEED_DEMO", "false") == "true",

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
		LokiURL:   os.Getenv("LOKI_URL"),

		StockAPIURL:  getenv("STOCK_API_URL", "http://localhost:3000/api/items/stock"),
		PollInterval: getduration("POLL_INTERVAL", 30*time.Second),
		FetchTimeout: getduration("FETCH_TIMEOUT", 10*time.Second),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		AlertTopic:    getenv("ALERT_TOPIC", "stock.alerts"),
		AlertCooldown: getduration("ALERT_COOLDOWN", time.Hour),
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}
