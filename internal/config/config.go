package config

import (
	"os"
	"time"

	"github.com/tair/bookbank/pkg/database"
)

// GoogleBooksConfig holds the external book catalog settings.
// The API key is injected here instead of being read from a
// process-wide global at call time.
type GoogleBooksConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// RedisConfig holds the session store backend settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Database driver selection for the user repository
const (
	DBDriverGorm     = "gorm"
	DBDriverPostgres = "postgres"
)

// Config holds the full server configuration
type Config struct {
	HTTPPort       string
	Environment    string
	LogLevel       string
	JaegerEndpoint string
	JWTSecret      string
	DBDriver       string
	SessionTTL     time.Duration

	Database    database.Config
	Redis       RedisConfig
	GoogleBooks GoogleBooksConfig
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		JWTSecret:      getEnv("JWT_SECRET", "bookbank-dev-secret"),
		DBDriver:       getEnv("DB_DRIVER", DBDriverGorm),
		SessionTTL:     24 * time.Hour,
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bookbank"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		GoogleBooks: GoogleBooksConfig{
			APIKey:  getEnv("GOOGLE_BOOKS_API_KEY", ""),
			BaseURL: getEnv("GOOGLE_BOOKS_API_URL", "https://books.googleapis.com/books/v1"),
			Timeout: 10 * time.Second,
		},
	}
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
