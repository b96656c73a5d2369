package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	APIServerAddr      string        `env:"API_SERVER_ADDR" envDefault:":8080"`
	AdminServerAddr    string        `env:"ADMIN_SERVER_ADDR" envDefault:":9091"`
	PostgresURL        string        `env:"POSTGRES_URL,required"`
	RedisAddr          string        `env:"REDIS_ADDR,required"`
	JWTSecret          string        `env:"JWT_SECRET,required"`
	MembershipCacheTTL time.Duration `env:"MEMBERSHIP_CACHE_TTL" envDefault:"1m"`
	PlanCacheTTL       time.Duration `env:"PLAN_CACHE_TTL" envDefault:"5m"`
	PlanCacheSize      int           `env:"PLAN_CACHE_SIZE" envDefault:"1024"`
	RateLimitPerSecond float64       `env:"RATE_LIMIT_PER_SECOND" envDefault:"25"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"50"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
