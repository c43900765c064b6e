package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables honored by the configuration loader. Each overrides
// the matching config-file field.
const (
	EnvConfigPath    = "CONFIG_PATH"
	EnvDBConnection  = "DB_CONNECTION"
	EnvSessionSecure = "SESSION_SECURE"
	EnvPort          = "PORT"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingDatabaseDSN indicates no database DSN is present in the config file.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` or `database.dsn` in config file)")

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	Secure bool `yaml:"secure"`
}

// LoadDatabaseDSN reads the database DSN from the YAML config file. The
// DB_CONNECTION environment variable wins when set.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	// fileConfig maps the YAML fields needed for DSN resolution.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}

// LoadSessionConfig loads session cookie settings from the YAML config file.
// The Secure flag marks the cookie Secure and should be on in production.
func LoadSessionConfig(configPath string) (SessionConfig, error) {
	// fileConfig maps the YAML fields needed for session settings.
	type fileConfig struct {
		Session SessionConfig `yaml:"session"`
	}

	var result SessionConfig

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var cfg fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal == nil {
			result = cfg.Session
		}
	}

	if raw := strings.TrimSpace(os.Getenv(EnvSessionSecure)); raw != "" {
		if secure, errParse := strconv.ParseBool(raw); errParse == nil {
			result.Secure = secure
		}
	}
	return result, nil
}

// ResolvePort returns the listen port, preferring the PORT environment
// variable over the flag default.
func ResolvePort(defaultPort int) int {
	if raw := strings.TrimSpace(os.Getenv(EnvPort)); raw != "" {
		if port, errParse := strconv.Atoi(raw); errParse == nil && port > 0 && port <= 65535 {
			return port
		}
	}
	return defaultPort
}
