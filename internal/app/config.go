package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the chart service and worker.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"CHART_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	RateLimit    int   `envconfig:"RATE_LIMIT" default:"60"`
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	QueueEnabled      bool   `envconfig:"QUEUE_ENABLED" default:"true"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"5"`
	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache ttl must not be negative")
	}
	if c.WorkerConcurrency <= 0 {
		return errors.New("worker concurrency must be positive")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// testModeEnv is set by test binaries so commands return before touching
// the network.
const testModeEnv = "SVGCHART_TEST_MODE"

// runtimeFlags are read apart from Config so a binary can bail out before
// its configuration is complete.
type runtimeFlags struct {
	TestMode bool `envconfig:"SVGCHART_TEST_MODE"`
}

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func loadRuntimeFlags() {
	var flags runtimeFlags
	if err := envconfig.Process("", &flags); err != nil {
		flags.TestMode = false
	}
	testMode.Store(flags.TestMode)
}

// InTestMode reports whether binaries should skip runtime side effects.
func InTestMode() bool {
	testModeOnce.Do(loadRuntimeFlags)
	return testMode.Load()
}

// RefreshTestMode rereads the flag after environment changes.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	loadRuntimeFlags()
}
