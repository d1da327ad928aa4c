package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Logging   LoggingConfig
	Reconcile ReconcileConfig
	RateLimit RateLimitConfig
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

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level    string
	ToFile   bool
	FilePath string
}

// ReconcileConfig holds settings for simulate and commit.
type ReconcileConfig struct {
	// CommitConcurrency caps in-flight writes per commit. Zero means unbounded.
	CommitConcurrency int
	// PreviewKey is the base64 fernet key sealing preview tokens.
	// When empty a random key is generated at startup and tokens do not survive restarts.
	PreviewKey       string
	PreviewTTL       time.Duration
	SnapshotCacheTTL time.Duration
	// AuditSchedule is a cron spec for the duplicate-alias audit. Empty disables it.
	AuditSchedule string
}

// RateLimitConfig throttles commit requests.
type RateLimitConfig struct {
	CommitsPerMinute int
	Burst            int
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
			Path: getEnv("DB_PATH", "./data/holdings.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", "./data/reconciler.log"),
		},
		Reconcile: ReconcileConfig{
			PreviewKey:    os.Getenv("PREVIEW_KEY"),
			AuditSchedule: getEnv("AUDIT_SCHEDULE", "0 3 * * *"),
		},
	}

	var err error
	if config.Logging.ToFile, err = getBool("LOG_TO_FILE", false); err != nil {
		return nil, err
	}
	if config.Reconcile.CommitConcurrency, err = getInt("COMMIT_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if config.Reconcile.PreviewTTL, err = getDuration("PREVIEW_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if config.Reconcile.SnapshotCacheTTL, err = getDuration("SNAPSHOT_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if config.RateLimit.CommitsPerMinute, err = getInt("COMMITS_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if config.RateLimit.Burst, err = getInt("COMMIT_BURST", 5); err != nil {
		return nil, err
	}

	if config.Reconcile.CommitConcurrency < 0 {
		return nil, fmt.Errorf("COMMIT_CONCURRENCY must not be negative, got %d", config.Reconcile.CommitConcurrency)
	}
	if config.RateLimit.CommitsPerMinute <= 0 || config.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("COMMITS_PER_MINUTE and COMMIT_BURST must be positive")
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

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
