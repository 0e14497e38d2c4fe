package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// APIConfig locates the reservation backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig holds the gateway listen settings.
type ServerConfig struct {
	Port string
}

// StreamConfig points at the backend's update stream. An empty URL disables
// the subscriber.
type StreamConfig struct {
	URL string
}

// LoggingConfig mirrors shared/logging.Config plus the log directory.
type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type Config struct {
	API     APIConfig
	Server  ServerConfig
	Stream  StreamConfig
	Logging LoggingConfig
}

// Load reads configuration from the environment. Empty variables fall back
// to local development defaults.
func Load() (*Config, error) {
	timeout, err := parseTimeout(os.Getenv("API_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getenv("API_BASE_URL", "http://localhost:5001"),
			Timeout: timeout,
		},
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Stream: StreamConfig{
			URL: strings.TrimSpace(os.Getenv("STREAM_URL")),
		},
		Logging: LoggingConfig{
			Level:     getenv("LOG_LEVEL", "info"),
			Format:    getenv("LOG_FORMAT", "text"),
			Directory: getenv("LOG_DIR", "./logs"),
		},
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseTimeout(raw string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 10 * time.Second, nil
	}
	timeout, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse API_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("API_TIMEOUT must be positive, got %s", timeout)
	}
	return timeout, nil
}
