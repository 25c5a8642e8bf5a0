package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Snaptrade SnaptradeConfig
	Sync      SyncConfig
	CORS      CORSConfig
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

// SnaptradeConfig holds aggregator API credentials and endpoint.
type SnaptradeConfig struct {
	BaseURL     string
	ClientID    string
	ConsumerKey string
}

// SyncConfig holds ingestion tuning and the at-rest secret key.
type SyncConfig struct {
	// PageSize is the activity page size requested from the aggregator.
	PageSize int
	// MaxPages bounds a full sync's pagination walk so one request cannot
	// run unbounded against a very large activity history.
	MaxPages int
	// AutoSyncSchedule is a cron expression for the background auto-sync
	// job. Empty disables the scheduler.
	AutoSyncSchedule string
	// SecretKey is the base64 fernet key used to encrypt aggregator user
	// secrets at rest. Empty disables encryption (plaintext storage).
	SecretKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
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
			Path: getEnv("DB_PATH", "./data/social_trading.db"),
		},
		Snaptrade: SnaptradeConfig{
			BaseURL:     getEnv("SNAPTRADE_BASE_URL", "https://api.snaptrade.com/api/v1"),
			ClientID:    getEnv("SNAPTRADE_CLIENT_ID", ""),
			ConsumerKey: getEnv("SNAPTRADE_CONSUMER_KEY", ""),
		},
		Sync: SyncConfig{
			PageSize:         getEnvInt("SYNC_PAGE_SIZE", 500),
			MaxPages:         getEnvInt("SYNC_MAX_PAGES", 20),
			AutoSyncSchedule: getEnv("AUTO_SYNC_SCHEDULE", ""),
			SecretKey:        getEnv("SECRET_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
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

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
