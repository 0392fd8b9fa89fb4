package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration
type Config struct {
	// Database
	DatabaseURL string `yaml:"database_url"`

	// Server
	ServerPort string `yaml:"server_port"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Load loads configuration from an optional YAML file named by CONFIG_FILE,
// then overrides from environment variables
func Load() *Config {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/provenance?sslmode=disable",
		ServerPort:  "8000",
		LogLevel:    "info",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("config file not readable, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Warn("config file not valid YAML, using defaults", "path", path, "error", err)
		}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
