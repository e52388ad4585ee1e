package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cesargomez89/mediacache/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port             string
	SettingsPath     string
	CacheDir         string
	DBPath           string
	CatalogURL       string
	OriginURL        string
	AudioQuality     string
	PlayerClients    []string
	LogLevel         string
	LogFormat        string
	CacheCompression int
	CatalogCacheTTL  time.Duration
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", constants.DefaultPort),
		SettingsPath:     getEnv("SETTINGS_PATH", constants.DefaultSettingsPath),
		CacheDir:         getEnv("CACHE_DIR", constants.DefaultCacheDir),
		DBPath:           getEnv("DB_PATH", constants.DefaultDBPath),
		CatalogURL:       getEnv("CATALOG_URL", constants.DefaultCatalogURL),
		OriginURL:        getEnv("ORIGIN_URL", constants.DefaultOriginURL),
		AudioQuality:     getEnv("AUDIO_QUALITY", constants.DefaultAudioQuality),
		PlayerClients:    splitList(getEnv("PLAYER_CLIENTS", constants.DefaultPlayerClients)),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		CacheCompression: getEnvInt("CACHE_COMPRESSION", constants.DefaultCompression),
		CatalogCacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", constants.DefaultCatalogCacheTTL),
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

	if c.SettingsPath == "" {
		errors = append(errors, "SETTINGS_PATH cannot be empty")
	}

	if c.CacheDir == "" {
		errors = append(errors, "CACHE_DIR cannot be empty")
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	errors = append(errors, validateURL("CATALOG_URL", c.CatalogURL)...)
	errors = append(errors, validateURL("ORIGIN_URL", c.OriginURL)...)

	if c.AudioQuality == "" {
		errors = append(errors, "AUDIO_QUALITY cannot be empty")
	}

	if len(c.PlayerClients) == 0 {
		errors = append(errors, "PLAYER_CLIENTS must name at least one client profile")
	}

	if c.CacheCompression < 0 || c.CacheCompression > constants.MaxCompressionLevel {
		errors = append(errors, fmt.Sprintf("CACHE_COMPRESSION must be between 0 and %d", constants.MaxCompressionLevel))
	}

	if c.CatalogCacheTTL < 0 {
		errors = append(errors, "CATALOG_CACHE_TTL must be a non-negative duration")
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

func validateURL(key, value string) []string {
	if value == "" {
		return []string{key + " cannot be empty"}
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []string{fmt.Sprintf("%s is not a valid URL: %s", key, value)}
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

// getEnvInt returns -1 for an unparsable value so Validate reports it.
func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	return n
}

// getEnvDuration returns -1 for an unparsable value so Validate reports it.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
