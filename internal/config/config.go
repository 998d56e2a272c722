package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Key-value storage configuration
	Storage StorageConfig

	// Entity store behaviour
	Store StoreConfig

	// Rate limiting for public write endpoints
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects and configures the key-value medium
type StorageConfig struct {
	Driver     string // "sqlite", "postgres" or "memory"
	Namespace  string // optional key prefix
	SQLitePath string
	Database   DatabaseConfig
}

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// StoreConfig holds entity store settings
type StoreConfig struct {
	Latency           time.Duration // simulated per-operation delay
	CommentModeration bool          // new comments start as pending when set
}

// RateLimitConfig holds per-client request budgets
type RateLimitConfig struct {
	LoginPerMinute   int
	CommentPerMinute int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver:     getEnv("KV_DRIVER", "sqlite"),
			Namespace:  getEnv("KV_NAMESPACE", ""),
			SQLitePath: getEnv("SQLITE_PATH", "./data/blog.db"),
			Database: DatabaseConfig{
				Host:         getEnv("DB_HOST", "localhost"),
				Port:         getEnv("DB_PORT", "5432"),
				User:         getEnv("DB_USER", "postgres"),
				Password:     getEnv("DB_PASSWORD", "postgres"),
				Name:         getEnv("DB_NAME", "blog_store"),
				SSLMode:      getEnv("DB_SSLMODE", "disable"),
				MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
				MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 2),
				MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			},
		},
		Store: StoreConfig{
			Latency:           getDurationEnv("STORE_LATENCY", 0),
			CommentModeration: getBoolEnv("COMMENT_MODERATION", false),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute:   getIntEnv("LOGIN_RATE_PER_MIN", 10),
			CommentPerMinute: getIntEnv("COMMENT_RATE_PER_MIN", 30),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres driver")
		}
		if c.Storage.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("KV_DRIVER must be one of: sqlite, postgres, memory (got %q)", c.Storage.Driver)
	}
	if c.Store.Latency < 0 {
		return fmt.Errorf("STORE_LATENCY must not be negative")
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.CommentPerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
