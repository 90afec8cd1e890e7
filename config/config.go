package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds everything read from the environment at startup. It is
// constructed once in main and handed to the components that need it.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string

	QuoteAPIURL string
	QuoteAPIKey string

	SessionSecret string
	SessionTTL    time.Duration

	Port string
}

// New reads the environment. The quote API key has no default: without it
// every lookup would fail, so startup refuses instead.
func New() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "password"),
		DBName:     getEnvOrDefault("DB_NAME", "finance"),

		RedisAddr: getEnvOrDefault("REDIS_ADDR", "127.0.0.1:6379"),

		QuoteAPIURL: getEnvOrDefault("QUOTE_API_URL", "https://cloud.iexapis.com/stable"),
		QuoteAPIKey: os.Getenv("QUOTE_API_KEY"),

		SessionSecret: getEnvOrDefault("SESSION_SECRET", "dev-secret"),
		SessionTTL:    24 * time.Hour,

		Port: getEnvOrDefault("PORT", "8080"),
	}

	if cfg.QuoteAPIKey == "" {
		return nil, errors.New("QUOTE_API_KEY not set")
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
