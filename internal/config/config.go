// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the files directory, fetch behavior, cache TTLs, and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abitbot/curriculum/internal/timeouts"
)

// Config holds all application configuration
type Config struct {
	// Logging
	LogLevel string

	// Error tracking / log shipping (Better Stack; both optional)
	SentryToken      string // Better Stack Errors token (empty = disabled)
	SentryHost       string // Better Stack Errors ingesting host
	BetterstackToken string // Better Stack Logs token (empty = stdout only)
	Environment      string // Deployment environment label

	// Local filesystem contract: raw downloaded curriculum documents,
	// one file per program, used as fetch cache and parse fallback.
	FilesDir string

	// Fetch Configuration
	FetchTimeout    time.Duration
	FetchMaxRetries int

	// Cache Configuration
	ProgramsCacheTTL   time.Duration
	CurriculumCacheTTL time.Duration
	DefaultCacheTTL    time.Duration
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SentryToken:      getEnv("SENTRY_TOKEN", ""),
		SentryHost:       getEnv("SENTRY_HOST", "errors.betterstack.com"),
		BetterstackToken: getEnv("BETTERSTACK_TOKEN", ""),
		Environment:      getEnv("ENVIRONMENT", "production"),

		FilesDir: getEnv("FILES_DIR", "files"),

		FetchTimeout:    getDurationEnv("FETCH_TIMEOUT", timeouts.FetchRequest),
		FetchMaxRetries: getIntEnv("FETCH_MAX_RETRIES", 3),

		ProgramsCacheTTL:   getDurationEnv("PROGRAMS_CACHE_TTL", timeouts.ProgramsCacheTTL),
		CurriculumCacheTTL: getDurationEnv("CURRICULUM_CACHE_TTL", timeouts.CurriculumCacheTTL),
		DefaultCacheTTL:    getDurationEnv("DEFAULT_CACHE_TTL", timeouts.DefaultCacheTTL),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.FilesDir == "" {
		errs = append(errs, errors.New("FILES_DIR is required"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout))
	}
	if c.FetchMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("FETCH_MAX_RETRIES cannot be negative, got %d", c.FetchMaxRetries))
	}
	if c.ProgramsCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("PROGRAMS_CACHE_TTL must be positive, got %v", c.ProgramsCacheTTL))
	}
	if c.CurriculumCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CURRICULUM_CACHE_TTL must be positive, got %v", c.CurriculumCacheTTL))
	}
	if c.DefaultCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_CACHE_TTL must be positive, got %v", c.DefaultCacheTTL))
	}
	if c.SentryToken != "" && c.SentryHost == "" {
		errs = append(errs, errors.New("SENTRY_HOST is required when SENTRY_TOKEN is set"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
