// Package config loads the yoga-admin configuration: defaults, then the
// YAML config file, then environment variable overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized as overrides.
const (
	EnvConfigPath     = "YOGA_ADMIN_CONFIG"
	EnvServerURL      = "YOGA_ADMIN_SERVER_URL"
	EnvSessionBackend = "YOGA_ADMIN_SESSION_BACKEND"
	EnvLogLevel       = "YOGA_ADMIN_LOG_LEVEL"
	EnvPageSize       = "YOGA_ADMIN_PAGE_SIZE"
)

// Session backends.
const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
)

// Config holds the full CLI configuration.
type Config struct {
	Server struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"server"`

	Session struct {
		Backend string `yaml:"backend"`
		File    string `yaml:"file"`
	} `yaml:"session"`

	Auth struct {
		RefreshThreshold time.Duration `yaml:"refresh_threshold"`
	} `yaml:"auth"`

	Dashboard struct {
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"dashboard"`

	Page struct {
		Size int `yaml:"size"`
	} `yaml:"page"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.URL = "http://localhost:8080"
	cfg.Server.Timeout = 10 * time.Second
	cfg.Session.Backend = BackendKeyring
	cfg.Auth.RefreshThreshold = 2 * time.Minute
	cfg.Dashboard.PollInterval = 30 * time.Second
	cfg.Page.Size = 20
	cfg.Logging.Level = "info"
	return cfg
}

// Path returns the config file location, honoring the override variable.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".yoga-admin", "config.yaml"), nil
}

// Load builds the effective configuration. A missing config file is fine;
// defaults plus environment cover it.
func Load() (*Config, error) {
	// A .env in the working directory is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := defaults()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv(EnvSessionBackend); v != "" {
		cfg.Session.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPageSize, err)
		}
		cfg.Page.Size = size
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values no command could work with.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server URL cannot be empty")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL: %s", c.Server.URL)
	}

	if c.Session.Backend != BackendKeyring && c.Session.Backend != BackendFile {
		return fmt.Errorf("invalid session backend: %s (expected %s or %s)",
			c.Session.Backend, BackendKeyring, BackendFile)
	}

	if c.Page.Size <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.Page.Size)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}

// Save writes the configuration to the config file atomically.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
