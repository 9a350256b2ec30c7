package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/notify"
	"github.com/percepta/journal/internal/repository"
)

// #region types

// Config is the percepta.yaml layout.
type Config struct {
	Timezone      string              `yaml:"timezone"`
	Storage       StorageConfig       `yaml:"storage"`
	Insight       InsightConfig       `yaml:"insight"`
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// StorageConfig selects the blob backend and collection retention.
type StorageConfig struct {
	Backend    string `yaml:"backend"` // sqlite | badger | memory
	Path       string `yaml:"path"`
	Retention  string `yaml:"retention"` // insertion | date_key
	MaxEntries int    `yaml:"max_entries"`
}

// InsightConfig mirrors insight.Config.
type InsightConfig struct {
	Window            int `yaml:"window"`
	MinEntries        int `yaml:"min_entries"`
	RepeatThreshold   int `yaml:"repeat_threshold"`
	CorrelationMood   int `yaml:"correlation_mood"`
	CorrelationEffect int `yaml:"correlation_effect"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// NotificationsConfig seeds the in-process notification center.
type NotificationsConfig struct {
	Status string `yaml:"status"`
	Grant  bool   `yaml:"grant"`
}

// #endregion types

// #region defaults

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"

	DefaultFile = "percepta.yaml"
)

// ValidBackends lists the accepted storage.backend values.
var ValidBackends = []string{BackendSQLite, BackendBadger, BackendMemory}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	ic := insight.DefaultConfig()
	return &Config{
		Timezone: "+09:00",
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Path:       "data/percepta.db",
			Retention:  string(repository.DefaultRetention.Policy),
			MaxEntries: repository.DefaultRetention.Max,
		},
		Insight: InsightConfig{
			Window:            ic.Window,
			MinEntries:        ic.MinEntries,
			RepeatThreshold:   ic.RepeatThreshold,
			CorrelationMood:   ic.CorrelationMood,
			CorrelationEffect: ic.CorrelationEffect,
		},
		Server:  ServerConfig{Addr: "127.0.0.1:7031"},
		Logging: LoggingConfig{Level: "info"},
		Notifications: NotificationsConfig{
			Status: string(notify.StatusNotDetermined),
			Grant:  true,
		},
	}
}

// #endregion defaults

// #region load

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PERCEPTA_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("PERCEPTA_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("PERCEPTA_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("PERCEPTA_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PERCEPTA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PERCEPTA_LOG_DEV"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.Development = b
		}
	}
}

// #endregion load

// #region validate

// Validate checks values Load cannot reject on its own.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.Storage.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, ValidBackends)
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage path required for backend %s", c.Storage.Backend)
	}
	if _, err := c.Retention(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Insight.Window < 1 || c.Insight.MinEntries < 1 || c.Insight.RepeatThreshold < 1 {
		return fmt.Errorf("insight window, min_entries and repeat_threshold must be positive")
	}
	switch notify.AuthorizationStatus(c.Notifications.Status) {
	case notify.StatusNotDetermined, notify.StatusDenied, notify.StatusAuthorized,
		notify.StatusProvisional, notify.StatusEphemeral:
	default:
		return fmt.Errorf("invalid notifications status: %s", c.Notifications.Status)
	}
	return nil
}

// #endregion validate

// #region accessors

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return datekey.LoadZone(c.Timezone)
}

// Retention returns the collection retention rule.
func (c *Config) Retention() (repository.Retention, error) {
	policy, err := repository.ParseRetentionPolicy(c.Storage.Retention)
	if err != nil {
		return repository.Retention{}, err
	}
	if c.Storage.MaxEntries < 1 {
		return repository.Retention{}, fmt.Errorf("storage max_entries must be positive, got %d", c.Storage.MaxEntries)
	}
	return repository.Retention{Max: c.Storage.MaxEntries, Policy: policy}, nil
}

// InsightConfig returns the engine thresholds.
func (c *Config) InsightConfig() insight.Config {
	return insight.Config{
		Window:            c.Insight.Window,
		MinEntries:        c.Insight.MinEntries,
		RepeatThreshold:   c.Insight.RepeatThreshold,
		CorrelationMood:   c.Insight.CorrelationMood,
		CorrelationEffect: c.Insight.CorrelationEffect,
	}
}

// #endregion accessors
