// Package config provides configuration management for Twingate Tray.
// It handles loading, saving, and validating application settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yllada/twingate-tray/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// ClientBinary is the network client CLI (status, start, stop, auth).
	ClientBinary string `yaml:"client_binary"`
	// NotifierBinary lists resources as JSON.
	NotifierBinary string `yaml:"notifier_binary"`
	// ClientName is shown in menu labels and tooltips.
	ClientName string `yaml:"client_name"`
	// ElevationCommand wraps privileged subcommands. Empty runs them directly.
	ElevationCommand string `yaml:"elevation_command"`
	// RefreshInterval is the menu refresh cadence.
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	// CommandTimeout bounds each blocking client invocation. Zero means no timeout.
	CommandTimeout time.Duration `yaml:"command_timeout"`
	// ShowNotifications enables desktop notifications for failed actions.
	ShowNotifications bool `yaml:"show_notifications"`
	// RecordHistory enables the action journal.
	RecordHistory bool `yaml:"record_history"`
	// HistoryLimit is how many journal entries --history prints.
	HistoryLimit int `yaml:"history_limit"`
	// LogLevel is debug, info, warn or error. --verbose forces debug.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ClientBinary:      common.DefaultClientBinary,
		NotifierBinary:    common.DefaultNotifierBinary,
		ClientName:        common.DefaultClientName,
		ElevationCommand:  common.DefaultElevationCommand,
		RefreshInterval:   common.RefreshInterval,
		CommandTimeout:    0,
		ShowNotifications: true,
		RecordHistory:     true,
		HistoryLimit:      common.DefaultHistoryLimit,
		LogLevel:          "info",
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from path, writing defaults there when
// the file does not exist yet.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cfg.SaveFile(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfigLoad, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration. Missing keys keep their defaults and
// unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.validate()
	return cfg, nil
}

// validate replaces unusable values with defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	if c.ClientBinary == "" {
		common.LogWarn("Config: empty client_binary, using %s", defaults.ClientBinary)
		c.ClientBinary = defaults.ClientBinary
	}
	if c.NotifierBinary == "" {
		common.LogWarn("Config: empty notifier_binary, using %s", defaults.NotifierBinary)
		c.NotifierBinary = defaults.NotifierBinary
	}
	if c.ClientName == "" {
		c.ClientName = defaults.ClientName
	}
	if c.RefreshInterval < common.MinRefreshInterval {
		common.LogWarn("Config: refresh_interval %v below %v, using %v",
			c.RefreshInterval, common.MinRefreshInterval, defaults.RefreshInterval)
		c.RefreshInterval = defaults.RefreshInterval
	}
	if c.CommandTimeout < 0 {
		c.CommandTimeout = 0
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaults.HistoryLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// SaveFile writes the configuration to path.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
