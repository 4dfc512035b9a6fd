package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
	}
	Passes struct {
		URL         string
		SatelliteID string
		// Zero means no timeout; a hung prediction call stays pending.
		Timeout time.Duration
	}
	Location struct {
		URL        string
		Permission bool
	}
	Display struct {
		TimeZone string
	}
	Sessions struct {
		IdleTTL      time.Duration
		ReapInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Pass prediction service
	cfg.Passes.URL = getEnv("PASSES_URL", "http://localhost:3001/api/passes")
	cfg.Passes.SatelliteID = getEnv("SATELLITE_ID", "25544")
	cfg.Passes.Timeout = getEnvAsDuration("PASSES_TIMEOUT", 0)

	// Device location
	cfg.Location.URL = getEnv("LOCATION_URL", "http://ip-api.com/json")
	cfg.Location.Permission = getEnvAsBool("LOCATION_PERMISSION", true)

	cfg.Display.TimeZone = getEnv("DISPLAY_TZ", "Local")

	// Sessions
	cfg.Sessions.IdleTTL = getEnvAsPositiveDuration("SESSION_IDLE_TTL", 30*time.Minute)
	cfg.Sessions.ReapInterval = getEnvAsPositiveDuration("SESSION_REAP_INTERVAL", time.Minute)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	return cfg
}

// DisplayLocation resolves the configured display time zone, falling back
// to the process local zone.
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}

// getEnvAsPositiveDuration is getEnvAsDuration with zero and negative values
// replaced by the default.
func getEnvAsPositiveDuration(key string, defaultValue time.Duration) time.Duration {
	if dur := getEnvAsDuration(key, defaultValue); dur > 0 {
		return dur
	}
	return defaultValue
}
