// Package config handles configuration loading and validation for taskdue.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskdue/internal/core/styles"
	"github.com/colonyops/taskdue/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	TasksFile   string         `yaml:"tasks_file"`
	DefaultSort task.SortKey   `yaml:"default_sort"`
	Reminder    ReminderConfig `yaml:"reminder"`
	Notify      NotifyConfig   `yaml:"notify"`
	TUI         TUIConfig      `yaml:"tui"`
	DataDir     string         `yaml:"-"` // set by caller, not from config file
}

// ReminderConfig controls the background due-date scan.
type ReminderConfig struct {
	Enabled  *bool         `yaml:"enabled"`  // nil = enabled
	Interval time.Duration `yaml:"interval"` // time between scans
	Window   time.Duration `yaml:"window"`   // how far ahead a due date triggers a reminder
}

// IsEnabled reports whether background reminders run.
func (r ReminderConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// NotifyConfig controls the desktop notification sink.
type NotifyConfig struct {
	// Desktop: nil = use the OS notifier when one is installed, false = never, true = always.
	Desktop *bool         `yaml:"desktop"`
	AppName string        `yaml:"app_name"`
	Timeout time.Duration `yaml:"timeout"`
}

// TUIConfig holds terminal UI preferences.
type TUIConfig struct {
	ShowCompleted *bool  `yaml:"show_completed"` // nil = show
	Theme         string `yaml:"theme"`
}

// ShowsCompleted reports whether completed tasks are listed in the TUI.
func (t TUIConfig) ShowsCompleted() bool {
	return t.ShowCompleted == nil || *t.ShowCompleted
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultSort: task.SortPriority,
		Reminder: ReminderConfig{
			Interval: time.Hour,
			Window:   24 * time.Hour,
		},
		Notify: NotifyConfig{
			AppName: "taskdue",
			Timeout: 10 * time.Second,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and validates it.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating, so
// callers can report every problem at once.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultSort == "" {
		c.DefaultSort = defaults.DefaultSort
	}
	if c.Reminder.Interval == 0 {
		c.Reminder.Interval = defaults.Reminder.Interval
	}
	if c.Reminder.Window == 0 {
		c.Reminder.Window = defaults.Reminder.Window
	}
	if c.Notify.AppName == "" {
		c.Notify.AppName = defaults.Notify.AppName
	}
	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = defaults.Notify.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// TasksPath returns the path of the task store file.
// Relative tasks_file values are resolved against the data directory.
func (c *Config) TasksPath() string {
	if c.TasksFile == "" {
		return filepath.Join(c.DataDir, "tasks.json")
	}
	if filepath.IsAbs(c.TasksFile) {
		return c.TasksFile
	}
	return filepath.Join(c.DataDir, c.TasksFile)
}

// LogPath returns the default log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "taskdue.log")
}
