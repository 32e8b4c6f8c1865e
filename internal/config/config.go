package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// Base URL of the platform API that owns users, jobs and applications.
	BackendAPIURL string `env:"BACKEND_API_URL"`

	// Distributed rate-limit store. Leaving the address empty is valid: the
	// limiter then degrades to its in-memory or bypass tier.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load reads configuration from the environment, with a best-effort .env
// file for development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	if cfg.BackendAPIURL == "" {
		return Config{}, fmt.Errorf("config: missing BACKEND_API_URL")
	}

	return cfg, nil
}

// Production gates the cookie Secure attribute and the limiter bypass tier.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}
