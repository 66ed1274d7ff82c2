package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, read from CLUBSWIM_* variables.
type Config struct {
	Server   Server
	Log      Log
	Database Database
	Redis    Redis
	Events   Events

	// FanOutLimit bounds concurrent store reads while assembling views.
	FanOutLimit int `env:"FAN_OUT_LIMIT" envDefault:"8"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `env:"ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Database selects the Postgres stores. An empty URL keeps everything in memory.
type Database struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// Redis enables the scoreboard cache when URL is set.
type Redis struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	CacheTTL     time.Duration `env:"SCOREBOARD_CACHE_TTL" envDefault:"5m"`
}

// Events publishes meet events to Kafka when Brokers is non-empty, and only
// logs them otherwise.
type Events struct {
	Brokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic    string   `env:"EVENTS_TOPIC" envDefault:"clubswim.meet-events"`
	ClientID string   `env:"KAFKA_CLIENT_ID" envDefault:"clubswim"`
}

// Prefix is prepended to every variable name.
const Prefix = "CLUBSWIM_"

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FanOutLimit < 1 {
		return Config{}, fmt.Errorf("%sFAN_OUT_LIMIT must be positive, got %d", Prefix, cfg.FanOutLimit)
	}
	return cfg, nil
}
