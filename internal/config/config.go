package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every runtime setting, loaded from environment variables.
type Config struct {
	Addr          string `env:"ADDR" env-default:":8080"`
	DatabaseURL   string `env:"DATABASE_URL" env-required:"true"`
	RedisURL      string `env:"REDIS_URL" env-required:"true"`
	BearerToken   string `env:"BEARER_TOKEN" env-required:"true"`
	MigrationsDir string `env:"MIGRATIONS_DIR" env-default:"migrations"`

	Upstream UpstreamConfig
	Cache    CacheConfig
}

// UpstreamConfig configures the hotel inventory/pricing provider client.
type UpstreamConfig struct {
	BaseURL     string        `env:"UPSTREAM_BASE_URL" env-required:"true"`
	PartnerID   string        `env:"UPSTREAM_PARTNER_ID" env-default:"1"`
	Currency    string        `env:"UPSTREAM_CURRENCY" env-default:"USD"`
	CountryCode string        `env:"UPSTREAM_COUNTRY" env-default:"US"`
	Locale      string        `env:"UPSTREAM_LOCALE" env-default:"en_US"`
	Timeout     time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"10s"`
	PollRetries int           `env:"PRICE_POLL_RETRIES" env-default:"2"`
	PollDelay   time.Duration `env:"PRICE_POLL_DELAY" env-default:"300ms"`
}

// CacheConfig configures the base-result cache.
type CacheConfig struct {
	TTL time.Duration `env:"SEARCH_CACHE_TTL" env-default:"10m"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from environment: %w", err)
	}
	return &cfg, nil
}
