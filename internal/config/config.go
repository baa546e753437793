// Package config loads the mirror configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Intervals is a scheduler interval pair for one task: the normal cadence
// and the slower cadence used while the task is in error backoff.
type Intervals struct {
	Normal  time.Duration
	OnError time.Duration
}

// Config holds all application configuration
type Config struct {
	// osu! API credentials
	OsuClientID     string
	OsuClientSecret string
	OsuAPIV1Key     string

	DBPath     string
	StorageDir string
	CookieFile string
	StatusPort string

	TrackAllMaps bool

	LogLevel   string
	LogFormat  string
	LogWebhook string

	// Per-task scheduler intervals.
	Auth    Intervals
	Cookie  Intervals
	Stats   Intervals
	Fetch   Intervals
	Refresh Intervals
	Recent  Intervals
	Missing Intervals
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		OsuClientID:     getEnv("OSU_API_CLIENT_ID", ""),
		OsuClientSecret: getEnv("OSU_API_CLIENT_SECRET", ""),
		OsuAPIV1Key:     getEnv("OSU_API_V1_KEY", ""),

		DBPath:     getEnv("DB_PATH", "mapmirror.db"),
		StorageDir: getEnv("STORAGE_DIR", "storage"),
		CookieFile: getEnv("COOKIE_FILE", "osu_session.cookie"),
		StatusPort: getEnv("STATUS_PORT", "8585"),

		TrackAllMaps: getEnvBool("TRACK_ALL_MAPS", false),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		LogWebhook: getEnv("MIRROR_LOG_WEBHOOK", ""),

		Auth:    getIntervals("AUTH", 120, 1),
		Cookie:  getIntervals("COOKIE", 60, 1),
		Stats:   getIntervals("STATS", 5, 5),
		Fetch:   getIntervals("FETCH", 1, 10),
		Refresh: getIntervals("REFRESH", 1, 10),
		Recent:  getIntervals("RECENT", 60, 10),
		Missing: getIntervals("MISSING", 1440, 60),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.OsuClientID == "" {
		errors = append(errors, "OSU_API_CLIENT_ID cannot be empty")
	} else if _, err := strconv.Atoi(c.OsuClientID); err != nil {
		errors = append(errors, fmt.Sprintf("OSU_API_CLIENT_ID must be numeric, got: %s", c.OsuClientID))
	}
	if c.OsuClientSecret == "" {
		errors = append(errors, "OSU_API_CLIENT_SECRET cannot be empty")
	}
	if c.OsuAPIV1Key == "" {
		errors = append(errors, "OSU_API_V1_KEY cannot be empty")
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}
	if c.StorageDir == "" {
		errors = append(errors, "STORAGE_DIR cannot be empty")
	}
	if c.CookieFile == "" {
		errors = append(errors, "COOKIE_FILE cannot be empty")
	}

	if c.StatusPort != "" {
		port, err := strconv.Atoi(c.StatusPort)
		if err != nil {
			errors = append(errors, fmt.Sprintf("STATUS_PORT must be a valid number, got: %s", c.StatusPort))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("STATUS_PORT must be between 1 and 65535, got: %d", port))
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	for name, iv := range map[string]Intervals{
		"AUTH": c.Auth, "COOKIE": c.Cookie, "STATS": c.Stats,
		"FETCH": c.Fetch, "REFRESH": c.Refresh, "RECENT": c.Recent, "MISSING": c.Missing,
	} {
		if iv.Normal <= 0 {
			errors = append(errors, fmt.Sprintf("%s_INTERVAL must be positive", name))
		}
		if iv.OnError <= 0 {
			errors = append(errors, fmt.Sprintf("%s_ERROR_INTERVAL must be positive", name))
		}
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

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getIntervals reads <prefix>_INTERVAL and <prefix>_ERROR_INTERVAL in
// minutes, falling back to the given defaults.
func getIntervals(prefix string, normalMin, errorMin int) Intervals {
	return Intervals{
		Normal:  time.Duration(getEnvInt(prefix+"_INTERVAL", normalMin)) * time.Minute,
		OnError: time.Duration(getEnvInt(prefix+"_ERROR_INTERVAL", errorMin)) * time.Minute,
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
