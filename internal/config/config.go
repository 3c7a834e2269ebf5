package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Catalog backend
	BackendURL      string
	BackendUsername string
	BackendPassword string
	BackendToken    string // Bearer token, takes precedence over Basic credentials

	// Requests
	RequestTimeout time.Duration

	// Server
	ServerPort string

	// Scheduler
	HealthCheckSchedule string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("HEALTH_CHECK_SCHEDULE", "*/5 * * * *")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		BackendURL:      strings.TrimRight(viper.GetString("BACKEND_URL"), "/"),
		BackendUsername: viper.GetString("BACKEND_USERNAME"),
		BackendPassword: viper.GetString("BACKEND_PASSWORD"),
		BackendToken:    viper.GetString("BACKEND_TOKEN"),

		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,

		ServerPort: viper.GetString("SERVER_PORT"),

		HealthCheckSchedule: viper.GetString("HEALTH_CHECK_SCHEDULE"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("BACKEND_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("BACKEND_URL must include a host")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if (c.BackendUsername == "") != (c.BackendPassword == "") {
		return fmt.Errorf("BACKEND_USERNAME and BACKEND_PASSWORD must be set together")
	}
	return nil
}

// HasCredentials reports whether write requests will be authenticated
func (c *Config) HasCredentials() bool {
	return c.BackendToken != "" || c.BackendUsername != ""
}
