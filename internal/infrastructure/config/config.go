package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	CORS      CORSConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	// LegacySeed is the variable name older deployments used for the secret.
	LegacySeed string        `env:"JWT_SEED"`
	TokenTTL   time.Duration `env:"JWT_TTL,     default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type CORSConfig struct {
	FrontendURI  string `env:"FRONT_END_URI,  default=http://localhost"`
	FrontendPort string `env:"FRONT_END_PORT, default=4200"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_service"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,   default=0"`
	CacheTTL time.Duration `env:"CACHE_TTL,  default=5m"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,   default=5"`
	Burst int     `env:"RATE_LIMIT_BURST, default=10"`
}

// Secret returns the signing secret, preferring JWT_SECRET over JWT_SEED.
func (a AuthConfig) Secret() string {
	if a.JWTSecret != "" {
		return a.JWTSecret
	}
	return a.LegacySeed
}

// AllowedOrigin is the single CORS origin, built as URI:PORT.
func (c CORSConfig) AllowedOrigin() string {
	if c.FrontendPort == "" {
		return c.FrontendURI
	}
	return strings.TrimRight(c.FrontendURI, "/") + ":" + c.FrontendPort
}

// IsDevelopment reports whether pretty logging and verbose errors are wanted.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Auth.Secret() == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit values must not be negative")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
