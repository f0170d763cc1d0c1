// Package config loads stockroom settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every subcommand. Command-line flags
// override file values.
type Config struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`

	// Addr is the HTTP listen address for serve.
	Addr string `yaml:"addr"`

	// AdminUser is the username created by init.
	AdminUser string `yaml:"admin_user"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// LowStockInterval is how often serve sweeps for items at or below their
	// reorder threshold. Zero disables the sweep.
	LowStockInterval time.Duration `yaml:"low_stock_interval"`

	// MaxUploadBytes caps the size of an import upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DB:               "stockroom.sqlite3",
		Addr:             ":8080",
		AdminUser:        "admin",
		LogLevel:         "info",
		LowStockInterval: time.Hour,
		MaxUploadBytes:   10 << 20,
	}
}

// Load reads the YAML file at path on top of Default. A missing file is not
// an error; Load then returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	switch {
	case c.DB == "":
		return errors.New("db must not be empty")
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.AdminUser == "":
		return errors.New("admin_user must not be empty")
	case c.LowStockInterval < 0:
		return errors.New("low_stock_interval cannot be negative")
	case c.MaxUploadBytes <= 0:
		return errors.New("max_upload_bytes must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}
