/*
Package configs is responsible for loading and validating the application's
configuration settings.

All values come from environment variables (with an optional .env file in
development), covering the chat listener, the HTTP status surface, the
journal location, and per-session flood limits.
*/
package configs

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig contains all configuration parameters required for the server to run.
type AppConfig struct {
	// General Server Settings
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Host        string `envconfig:"HOST" default:""`
	Port        int    `envconfig:"PORT" default:"9001"`

	// HTTP status/history surface
	HTTPPort       int      `envconfig:"HTTP_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	// Journal Settings
	JournalPath  string `envconfig:"JOURNAL_PATH" default:"logs/chathistory.log"`
	HistoryDepth int    `envconfig:"HISTORY_DEPTH" default:"10"`

	// Flood limits applied to each session's Active read loop.
	// MessageRate is messages per second; MessageBurst is the bucket size.
	MessageRate  float64 `envconfig:"MESSAGE_RATE" default:"5"`
	MessageBurst int     `envconfig:"MESSAGE_BURST" default:"10"`
}

// LoadConfig reads the application configuration from the environment.
// A .env file is honored when present so development setups need no exports.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment configuration: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.HTTPPort < 1024 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("http port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.HTTPPort, 1024, 65535)
	}

	if cfg.HTTPPort == cfg.Port {
		return nil, fmt.Errorf("http port and chat port must differ, both set to %d", cfg.Port)
	}

	if cfg.HistoryDepth < 0 {
		return nil, fmt.Errorf("history depth must not be negative, got %d", cfg.HistoryDepth)
	}

	if cfg.JournalPath == "" {
		return nil, fmt.Errorf("journal path must not be empty")
	}

	return cfg, nil
}
