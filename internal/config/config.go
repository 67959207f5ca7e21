package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings shared by the catpoint commands.
type Config struct {
	// DatabaseFile is the path to the SQLite file storing sensors and statuses.
	DatabaseFile string `yaml:"database_file"`
	// LogLevel is the minimum log level (debug, info, warn, error, fatal).
	LogLevel string `yaml:"log_level"`
	// CatConfidenceThreshold is the confidence (percent) the classifier must
	// reach before an image counts as containing a cat.
	CatConfidenceThreshold float32 `yaml:"cat_confidence_threshold"`
	// MonitorPollInterval is the delay between repository polls in monitor mode.
	MonitorPollInterval time.Duration `yaml:"monitor_poll_interval"`
	// AlarmCommand is an optional local command started when the monitor
	// observes the system entering the alarm state (siren hook).
	AlarmCommand string `yaml:"alarm_command"`
}

const (
	// DefaultConfigFilename is the default filename for catpoint settings.
	DefaultConfigFilename = "catpoint-settings.yaml"

	// DefaultDatabaseFilename is the default filename for the SQLite store.
	DefaultDatabaseFilename = "catpoint.db"

	// DefaultLogLevel is used when the settings file does not name one.
	DefaultLogLevel = "info"

	// DefaultCatConfidenceThreshold is the confidence asked of the classifier
	// when the settings file does not name one.
	DefaultCatConfidenceThreshold float32 = 50.0

	// DefaultMonitorPollInterval is the delay between repository polls.
	DefaultMonitorPollInterval = 2 * time.Second

	// DefaultFilePermissions is the file permission for written settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errThresholdOutOfRange is returned when the cat confidence threshold
	// leaves the percentage scale.
	errThresholdOutOfRange = errors.New("cat confidence threshold must be within (0, 100]")
)

// Default returns a configuration with all defaults filled in.
func Default() *Config {
	return &Config{
		DatabaseFile:           DefaultDatabaseFilename,
		LogLevel:               DefaultLogLevel,
		CatConfidenceThreshold: DefaultCatConfidenceThreshold,
		MonitorPollInterval:    DefaultMonitorPollInterval,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path yields the default configuration, so the
// commands work out of the box; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	usingDefaultPath := path == ""
	if usingDefaultPath {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills absent values with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = DefaultDatabaseFilename
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	// Zero means "not set"; the classifier needs a positive percentage.
	if cfg.CatConfidenceThreshold == 0 {
		cfg.CatConfidenceThreshold = DefaultCatConfidenceThreshold
	}

	if cfg.CatConfidenceThreshold < 0 || cfg.CatConfidenceThreshold > 100 {
		return fmt.Errorf("%w: %v", errThresholdOutOfRange, cfg.CatConfidenceThreshold)
	}

	if cfg.MonitorPollInterval <= 0 {
		cfg.MonitorPollInterval = DefaultMonitorPollInterval
	}

	return nil
}
