package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	ExchangeRate ExchangeRateConfig `yaml:"exchangeRate"`
	Cache        CacheConfig        `yaml:"cache"`
	Archive      ArchiveConfig      `yaml:"archive"`
	Currency     CurrencyConfig     `yaml:"currency"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	APIPrefix    string          `yaml:"apiPrefix"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// ExchangeRateConfig points at the upstream rate API.
type ExchangeRateConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls how long upstream responses are reused.
type CacheConfig struct {
	RatesTTL      time.Duration `yaml:"ratesTtl"`
	HistoricalTTL time.Duration `yaml:"historicalTtl"`
	MaxEntries    int           `yaml:"maxEntries"`
	Valkey        ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ArchiveConfig controls where fetched historical rates are kept.
type ArchiveConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// CurrencyConfig holds currency endpoint defaults.
type CurrencyConfig struct {
	DefaultBase       string `yaml:"defaultBase"`
	MaxHistoricalDays int    `yaml:"maxHistoricalDays"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	} else if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("API_GLOBAL_PREFIX"); v != "" {
		cfg.HTTP.APIPrefix = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("EXCHANGERATE_API_KEY"); v != "" {
		cfg.ExchangeRate.APIKey = v
	}
	if v := os.Getenv("EXCHANGERATE_API_URL"); v != "" {
		cfg.ExchangeRate.BaseURL = v
	}
	if v := os.Getenv("EXCHANGERATE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.ExchangeRate.Timeout = parsed
		}
	}
	if v := os.Getenv("CACHE_RATES_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.RatesTTL = parsed
		}
	}
	if v := os.Getenv("CACHE_HISTORICAL_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.HistoricalTTL = parsed
		}
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = parsed
		}
	}
	if v := os.Getenv("CACHE_VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CACHE_VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_DSN"); v != "" {
		cfg.Archive.Postgres.DSN = v
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Archive.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("ARCHIVE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Archive.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("CURRENCY_DEFAULT_BASE"); v != "" {
		cfg.Currency.DefaultBase = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":3001",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			APIPrefix:    "/api",
			CORSOrigins:  []string{"http://localhost:3000"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 200 * time.Millisecond,
				Exclude: []string{
					"/api/currency/test",
				},
			},
		},
		ExchangeRate: ExchangeRateConfig{
			BaseURL: "https://api.exchangerate.host",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			RatesTTL:      time.Hour,
			HistoricalTTL: 24 * time.Hour,
			MaxEntries:    100,
			Valkey: ValkeyConfig{
				Enabled: false,
				Prefix:  "exchanger",
			},
		},
		Archive: ArchiveConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Currency: CurrencyConfig{
			DefaultBase:       "USD",
			MaxHistoricalDays: 30,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if !strings.HasPrefix(c.HTTP.APIPrefix, "/") {
		return errors.New("http.apiPrefix must start with /")
	}
	if strings.TrimSpace(c.ExchangeRate.BaseURL) == "" {
		return errors.New("exchangeRate.baseUrl cannot be empty")
	}
	if c.ExchangeRate.Timeout <= 0 {
		return errors.New("exchangeRate.timeout must be positive")
	}
	if c.Cache.RatesTTL < 0 {
		return errors.New("cache.ratesTtl cannot be negative")
	}
	if c.Cache.HistoricalTTL < 0 {
		return errors.New("cache.historicalTtl cannot be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("cache.maxEntries cannot be negative")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if len(strings.TrimSpace(c.Currency.DefaultBase)) != 3 {
		return errors.New("currency.defaultBase must be a 3-letter currency code")
	}
	if c.Currency.MaxHistoricalDays <= 0 {
		return errors.New("currency.maxHistoricalDays must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
