// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the local API server will bind to.
	ServerHost string
	// ServerPort is the port number the local API server will listen on.
	ServerPort int

	// KeyStorePath is the filesystem path of the bbolt database holding the
	// device master key record.
	KeyStorePath string

	// RemoteBaseURL is the base URL of the remote sync server.
	RemoteBaseURL string
	// RemoteAuthToken is the bearer token used to authenticate against the remote sync server.
	RemoteAuthToken string
	// RemoteTimeout is the per-request timeout for remote sync server calls.
	RemoteTimeout time.Duration
	// RemoteRetryMax is the maximum number of retries for remote sync server calls.
	RemoteRetryMax int

	// CacheSize is the maximum number of decrypted entity lists kept in the client cache.
	CacheSize int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// RateLimitEnabled indicates whether rate limiting for the local API is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Key store
		KeyStorePath: env.GetString("KEY_STORE_PATH", defaultKeyStorePath()),

		// Remote sync server
		RemoteBaseURL:   env.GetString("REMOTE_BASE_URL", "http://localhost:9090"),
		RemoteAuthToken: env.GetString("REMOTE_AUTH_TOKEN", ""),
		RemoteTimeout:   env.GetDuration("REMOTE_TIMEOUT_SECONDS", 15, time.Second),
		RemoteRetryMax:  env.GetInt("REMOTE_RETRY_MAX", 3),

		// Client cache
		CacheSize: env.GetInt("CACHE_SIZE", 128),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 50.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "finvault"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// defaultKeyStorePath resolves the per-user key store location.
func defaultKeyStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "finvault-keystore.db"
	}
	return filepath.Join(home, ".finvault", "keystore.db")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
