// Package config loads runtime settings from the environment and the
// editorial query lists from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Provider credentials, both optional
	SerperAPIKey string
	GNewsAPIKey  string

	// Provider endpoints (overridable for tests and proxies)
	SerperBaseURL string
	GNewsBaseURL  string

	// Free-tier budgets per provider per day (0 = unlimited)
	SerperDailyQuota int
	GNewsDailyQuota  int

	// Pipeline settings
	MinProviderItems int // below this, the next provider tier is consulted
	RequestTimeout   time.Duration

	// Files
	SnapshotPath      string
	QueriesConfigPath string
	WatchQueries      bool

	// HTTP settings
	Port        string
	CORSOrigins []string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SerperBaseURL:     "https://google.serper.dev",
		GNewsBaseURL:      "https://gnews.io",
		MinProviderItems:  5,
		RequestTimeout:    15 * time.Second,
		SnapshotPath:      "public/live_intel.json",
		QueriesConfigPath: "configs/queries.yaml",
		Port:              "8080",
		CORSOrigins:       []string{"*"},
	}

	// Load from environment
	cfg.SerperAPIKey = strings.TrimSpace(os.Getenv("SERPER_API_KEY"))
	cfg.GNewsAPIKey = strings.TrimSpace(os.Getenv("GNEWS_API_KEY"))

	cfg.SerperBaseURL = getEnvOrDefault("SERPER_BASE_URL", cfg.SerperBaseURL)
	cfg.GNewsBaseURL = getEnvOrDefault("GNEWS_BASE_URL", cfg.GNewsBaseURL)
	cfg.SerperDailyQuota = getEnvIntOrDefault("SERPER_DAILY_QUOTA", 0)
	cfg.GNewsDailyQuota = getEnvIntOrDefault("GNEWS_DAILY_QUOTA", 0)

	cfg.MinProviderItems = getEnvIntOrDefault("MIN_PROVIDER_ITEMS", cfg.MinProviderItems)
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	cfg.SnapshotPath = getEnvOrDefault("SNAPSHOT_PATH", cfg.SnapshotPath)
	cfg.QueriesConfigPath = getEnvOrDefault("QUERIES_CONFIG_PATH", cfg.QueriesConfigPath)
	cfg.WatchQueries = os.Getenv("WATCH_QUERIES") == "true"

	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges only; every credential is optional and the
// pipeline degrades to curated-only output without them.
func (c *Config) Validate() error {
	if c.MinProviderItems < 1 {
		return fmt.Errorf("MIN_PROVIDER_ITEMS must be >= 1")
	}
	if c.SerperDailyQuota < 0 || c.GNewsDailyQuota < 0 {
		return fmt.Errorf("daily quotas must be >= 0")
	}
	if c.SnapshotPath == "" {
		return fmt.Errorf("SNAPSHOT_PATH must not be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// HasSerper reports whether the primary provider is configured.
func (c *Config) HasSerper() bool { return c.SerperAPIKey != "" }

// HasGNews reports whether the secondary provider is configured.
func (c *Config) HasGNews() bool { return c.GNewsAPIKey != "" }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
