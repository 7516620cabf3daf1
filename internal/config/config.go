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

// Config holds runtime configuration resolved from the environment.
type Config struct {
	// Storage
	DBPath      string
	LockTimeout time.Duration

	// Logging
	LogLevel string
	LogFile  string

	// Media
	ImagePreview bool
	HTTPTimeout  time.Duration

	// First run
	SkipOnboarding bool
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set are left alone, and missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", ".env.local"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from the environment, filling defaults under
// the user's ~/.foodies directory.
func Load() *Config {
	dir := DefaultDir()
	return &Config{
		DBPath:         getEnv("FOODIES_DB_PATH", filepath.Join(dir, "foodies.db")),
		LockTimeout:    getEnvDuration("FOODIES_LOCK_TIMEOUT", 3*time.Second),
		LogLevel:       getEnv("FOODIES_LOG_LEVEL", "info"),
		LogFile:        getEnv("FOODIES_LOG_FILE", filepath.Join(dir, "foodies.log")),
		ImagePreview:   getEnvBool("FOODIES_IMAGE_PREVIEW", true),
		HTTPTimeout:    getEnvDuration("FOODIES_HTTP_TIMEOUT", 5*time.Second),
		SkipOnboarding: getEnvBool("FOODIES_SKIP_ONBOARDING", false),
	}
}

// DefaultDir returns ~/.foodies, or .foodies when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".foodies"
	}
	return filepath.Join(home, ".foodies")
}

// ConfigDir is where preference files live: next to the database.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.DBPath)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	} else {
		dir := filepath.Dir(c.DBPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.LockTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid lock timeout %v: must be at least 100ms", c.LockTimeout))
	} else if c.LockTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid lock timeout %v: must be at most 1 minute", c.LockTimeout))
	}

	if c.HTTPTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid http timeout %v: must be positive", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
