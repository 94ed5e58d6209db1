package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasreed/vidvault/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port         string
	DBPath       string
	KVPath       string
	CacheMaxSize int
	CacheTTL     time.Duration
	LogLevel     string
	LogFormat    string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", constants.DefaultPort),
		DBPath:       getEnv("DB_PATH", constants.DefaultDBPath),
		KVPath:       getEnv("KV_PATH", constants.DefaultKVPath),
		CacheMaxSize: getEnvInt("CACHE_MAX_SIZE", constants.DefaultCacheMaxSize),
		CacheTTL:     getEnvDuration("CACHE_TTL", constants.DefaultCacheTTL),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate DBPath
	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate KVPath
	if c.KVPath == "" {
		errors = append(errors, "KV_PATH cannot be empty")
	}

	// Validate CacheMaxSize
	if c.CacheMaxSize < 1 {
		errors = append(errors, fmt.Sprintf("CACHE_MAX_SIZE must be positive, got: %d", c.CacheMaxSize))
	}

	// Validate CacheTTL
	if c.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("CACHE_TTL must be positive, got: %s", c.CacheTTL))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
