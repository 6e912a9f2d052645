package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
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

	// redis, used by the rate limiter
	RedisHost          string `toml:"redis_host"`
	RedisPort          string `toml:"redis_port"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`

	// rate limit on X-Real-Ip / X-Forwarded-For, only behind a proxy that sets them
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`

	// prometheus metrics
	MetricsHost string `toml:"metrics_host"`
	MetricsPort string `toml:"metrics_port"`

	// warm-up engine
	WarmupCatalogPath string   `toml:"warmup_catalog_path"`
	CacheSizeBytes    int      `toml:"cache_size_bytes"`
	CacheTTL          Duration `toml:"cache_ttl"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration lets TOML carry durations as strings, e.g. "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.RateLimitPerMinute < 0 {
		err = multierr.Append(err, errors.New("rate_limit_per_minute cannot be negative"))
	}
	if c.CacheSizeBytes < 0 {
		err = multierr.Append(err, errors.New("cache_size_bytes cannot be negative"))
	}
	if c.CacheTTL.Duration < 0 {
		err = multierr.Append(err, errors.New("cache_ttl cannot be negative"))
	} else if c.CacheTTL.Duration > 0 && c.CacheTTL.Duration < time.Second {
		// cache expiry has second granularity
		err = multierr.Append(err, fmt.Errorf("cache_ttl %s below 1s", c.CacheTTL.Duration))
	}
	return err
}
