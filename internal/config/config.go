package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const (
	LogStoreMemory   = "memory"
	LogStoreRedis    = "redis"
	LogStorePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// workout logs storage: memory | redis | postgres
	LogStore       string `toml:"log_store"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// training
	Timezone                  string   `toml:"timezone"`
	LogRateLimitAllowedPerMin int      `toml:"log_rate_limit_allowed_per_min"`
	ProgressCacheSizeMB       int      `toml:"progress_cache_size_mb"`
	ProgressCacheTTLSeconds   int      `toml:"progress_cache_ttl_seconds"`
	AllowedOrigins            []string `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and values validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9100
	}
	if c.LogStore == "" {
		c.LogStore = LogStoreMemory
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LogRateLimitAllowedPerMin == 0 {
		c.LogRateLimitAllowedPerMin = 60
	}
	if c.ProgressCacheSizeMB == 0 {
		c.ProgressCacheSizeMB = 8
	}
	if c.ProgressCacheTTLSeconds == 0 {
		c.ProgressCacheTTLSeconds = 15
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

func (c *Config) Validate() error {
	switch c.LogStore {
	case LogStoreMemory:
	case LogStoreRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			return errors.New("redis log store needs redis_host and redis_port")
		}
	case LogStorePostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return errors.New("postgres log store needs postgres_host, postgres_port and postgres_db_name")
		}
	default:
		return fmt.Errorf("unknown log store: %s", c.LogStore)
	}

	if c.ProgressCacheTTLSeconds < 0 {
		return errors.New("progress_cache_ttl_seconds must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// RedisEnabled tells whether a redis server is configured. Redis backs the
// rate limiter even when workout logs live in another store.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != "" && c.RedisPort != ""
}

// ProgressCacheTTL is how long a computed module progress may be served from
// cache. Logs in redis or postgres can be appended by other processes (import
// tool, other replicas) that cannot invalidate this process' cache, so those
// entries expire. The memory store has a single writer and never expires.
func (c *Config) ProgressCacheTTL() time.Duration {
	if c.LogStore == LogStoreMemory {
		return 0
	}
	return time.Duration(c.ProgressCacheTTLSeconds) * time.Second
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", c.Timezone, err)
	}
	return loc, nil
}
