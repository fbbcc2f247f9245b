package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var loaded = false

// Load loads environment variables from .env file (if it exists)
func Load() error {
	if !loaded {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error loading .env file: %w", err)
		}
		loaded = true
	}
	return nil
}

// Get retrieves an environment variable with a default value
func Get(key, defaultValue string) string {
	_ = Load() // Ensure environment is loaded
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBool retrieves an environment variable as a boolean
func GetBool(key string, defaultValue bool) bool {
	_ = Load()
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetInt retrieves an environment variable as an integer
func GetInt(key string, defaultValue int) int {
	_ = Load()
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetDuration retrieves an environment variable as a time.Duration
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	_ = Load()
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Require checks that required environment variables are set
func Require(keys ...string) error {
	_ = Load()
	var missing []string

	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return nil
}

// PortalConfig contains settings for the admin portal REST backend
type PortalConfig struct {
	BaseURL string
	WebURL  string
	Timeout time.Duration
}

// CacheConfig contains settings for the local snapshot cache
type CacheConfig struct {
	Path    string
	TTL     time.Duration
	Enabled bool
}

// Config represents the application configuration
type Config struct {
	Portal PortalConfig
	Cache  CacheConfig
}

// LoadConfig loads the complete application configuration
func LoadConfig() (*Config, error) {
	_ = Load()

	home, _ := os.UserHomeDir()
	defaultCache := filepath.Join(home, ".payboard", "cache.db")

	cfg := &Config{
		Portal: PortalConfig{
			BaseURL: Get("PORTAL_BASE_URL", "http://localhost:8080/api/v1"),
			WebURL:  Get("PORTAL_WEB_URL", "http://localhost:5173"),
			Timeout: GetDuration("PORTAL_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Path:    Get("PAYBOARD_CACHE_PATH", defaultCache),
			TTL:     GetDuration("PAYBOARD_CACHE_TTL", 10*time.Minute),
			Enabled: GetBool("PAYBOARD_CACHE_ENABLED", true),
		},
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errors []string

	if c.Portal.BaseURL == "" {
		errors = append(errors, "PORTAL_BASE_URL is required")
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		errors = append(errors, "PAYBOARD_CACHE_PATH is required when the cache is enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
