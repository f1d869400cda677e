package config

import (
	"fmt"
	"os"

	"finpulse/internal/logger"
)

// Config is the process configuration, read from the environment. Entry
// points call godotenv.Load() before Load so a local .env works in dev.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string

	// AI extraction (optional; extraction endpoints fail gracefully without it)
	OpenAIAPIKey string

	// Zoho Books sync (optional; sync endpoints fail gracefully without it)
	ZohoAPIBase    string
	ZohoOAuthToken string
	ZohoOrgID      string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment and validates the required
// fields.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		ZohoAPIBase:    getEnv("ZOHO_API_BASE", "https://www.zohoapis.in/books/v3"),
		ZohoOAuthToken: getEnv("ZOHO_OAUTH_TOKEN", ""),
		ZohoOrgID:      getEnv("ZOHO_ORG_ID", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// SyncConfigured reports whether outbound Zoho sync can be wired up.
func (c *Config) SyncConfigured() bool {
	return c.ZohoOAuthToken != "" && c.ZohoOrgID != ""
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{Level: c.LogLevel, Format: c.LogFormat}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
