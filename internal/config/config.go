// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/aristath/strategy-builder/internal/modules/risk"
	"github.com/aristath/strategy-builder/internal/modules/universe"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	// LogPretty switches the logger to human-readable console output
	LogPretty bool
	DevMode   bool

	UniverseSize int
	// UniverseSeed of 0 derives the seed from the clock at startup
	UniverseSeed int64
	// UniverseRefreshSchedule is a cron spec; empty disables scheduled refreshes
	UniverseRefreshSchedule string

	DefaultRiskProfile risk.ProfileLabel
	MetricsNamespace   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnvAsInt("GO_PORT", 8001),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogPretty:               getEnvAsBool("LOG_PRETTY", true),
		DevMode:                 getEnvAsBool("DEV_MODE", false),
		UniverseSize:            getEnvAsInt("UNIVERSE_SIZE", 500),
		UniverseSeed:            getEnvAsInt64("UNIVERSE_SEED", 0),
		UniverseRefreshSchedule: getEnv("UNIVERSE_REFRESH_SCHEDULE", ""),
		DefaultRiskProfile:      risk.ProfileLabel(getEnv("DEFAULT_RISK_PROFILE", string(risk.Moderate))),
		MetricsNamespace:        getEnv("METRICS_NAMESPACE", "strategy_builder"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("GO_PORT out of range: %d", c.Port))
	}
	if c.UniverseSize < 0 || c.UniverseSize > universe.MaxUniverseSize {
		errs = append(errs, fmt.Errorf("UNIVERSE_SIZE must be within [0, %d]: %d", universe.MaxUniverseSize, c.UniverseSize))
	}

	label, err := risk.ParseLabel(string(c.DefaultRiskProfile))
	if err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_RISK_PROFILE: %w", err))
	} else {
		c.DefaultRiskProfile = label
	}

	if c.UniverseRefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.UniverseRefreshSchedule); err != nil {
			errs = append(errs, fmt.Errorf("UNIVERSE_REFRESH_SCHEDULE: %w", err))
		}
	}
	if c.MetricsNamespace == "" {
		errs = append(errs, errors.New("METRICS_NAMESPACE must not be empty"))
	}

	return errors.Join(errs...)
}

// InitialSeed returns the configured seed, or one derived from now when unset
func (c *Config) InitialSeed(now time.Time) int64 {
	if c.UniverseSeed != 0 {
		return c.UniverseSeed
	}
	return now.UnixNano()
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
