package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds market-data configuration: outbound request pacing for
// the rate-limited general provider and the background refresh schedule.
type MarketConfig struct {
	RequestSpacing  time.Duration // minimum gap between general provider requests
	RefreshSchedule string        // cron spec for the background price refresh
	RateTTL         time.Duration // staleness window for exchange rates
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			RequestSpacing:  getEnvMillis("MARKET_REQUEST_SPACING_MS", 200),
			RefreshSchedule: getEnv("MARKET_REFRESH_SCHEDULE", "@every 5m"),
			RateTTL:         getEnvMillis("RATE_TTL_MS", 60*60*1000),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvMillis gets an integer environment variable expressed in milliseconds
// or returns the default.
func getEnvMillis(key string, defaultMillis int) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultMillis) * time.Millisecond
	}
	ms, err := strconv.Atoi(value)
	if err != nil {
		return time.Duration(defaultMillis) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
