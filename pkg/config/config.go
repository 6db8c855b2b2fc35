package config

import (
	"os"
	"time"
)

// AppConfig general application configuration
type AppConfig struct {
	// Rate Limiting
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	// Storage
	DatabaseAdapter string // "postgres" or "sqlite"
	DatabaseURL     string
	DatabasePath    string

	// Cache
	RedisURL string

	// Environment
	Environment string
}

// RateLimitConfig configuration for rate limiting
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	adapter := os.Getenv("DATABASE_ADAPTER")

	if adapter == "" {
		adapter = "sqlite"
	}

	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/auth": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/api/todos": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		DatabaseAdapter: adapter,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabasePath:    os.Getenv("DATABASE_PATH"),
		RedisURL:        os.Getenv("REDIS_URL"),
		Environment:     "development",
	}
}
