// Package config loads storefront settings from a YAML file and the environment.
//
// Priority (lowest to highest): defaults, YAML file, STOREFRONT_* environment
// variables. Command-line flags are applied by the binaries on top of that.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration shared by the client and the server binaries
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json или text
}

// ServerConfig настройки reference cart backend
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	DBPath          string          `yaml:"db_path"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
}

// RateLimitConfig ограничение частоты запросов на один IP
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// ClientConfig настройки storefront клиента
type ClientConfig struct {
	ServerURL      string        `yaml:"server_url"`
	DBPath         string        `yaml:"db_path"`
	SyncWindow     time.Duration `yaml:"sync_window"`     // quiescence window перед синхронизацией
	RequestTimeout time.Duration `yaml:"request_timeout"` // таймаут одного HTTP запроса
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:   ":8080",
			DBPath: "storefront.db",
			RateLimit: RateLimitConfig{
				Requests: 600,
				Window:   time.Minute,
			},
			ShutdownTimeout: 10 * time.Second,
		},
		Client: ClientConfig{
			ServerURL:      "http://localhost:8080",
			DBPath:         "storefront-client.db",
			SyncWindow:     time.Second,
			RequestTimeout: 10 * time.Second,
		},
	}
}

// Load reads the YAML file at path (optional, "" skips it) and applies
// environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail much later at runtime
func (c Config) Validate() error {
	var errs []error
	if c.Client.SyncWindow <= 0 {
		errs = append(errs, fmt.Errorf("client.sync_window must be positive"))
	}
	if c.Client.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("client.request_timeout must be positive"))
	}
	if c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit requests and window must be positive"))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Log.Level, "STOREFRONT_LOG_LEVEL")
	setString(&cfg.Log.Format, "STOREFRONT_LOG_FORMAT")
	setString(&cfg.Server.Addr, "STOREFRONT_SERVER_ADDR")
	setString(&cfg.Server.DBPath, "STOREFRONT_SERVER_DB")
	setString(&cfg.Client.ServerURL, "STOREFRONT_SERVER_URL")
	setString(&cfg.Client.DBPath, "STOREFRONT_CLIENT_DB")

	if err := setInt(&cfg.Server.RateLimit.Requests, "STOREFRONT_RATE_LIMIT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.RateLimit.Window, "STOREFRONT_RATE_WINDOW"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Client.SyncWindow, "STOREFRONT_SYNC_WINDOW"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Client.RequestTimeout, "STOREFRONT_REQUEST_TIMEOUT"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
