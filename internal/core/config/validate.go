package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskdue/internal/core/styles"
)

const minReminderInterval = time.Minute

// ValidationResult is the outcome of ValidateDeep, shaped for CLI output.
type ValidationResult struct {
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError is a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// IsValid reports whether no errors were found.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(c.DataDir) == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if !c.DefaultSort.IsValid() {
		errs = errs.Append("default_sort", fmt.Errorf("invalid sort key %q: must be priority, due_date or none", c.DefaultSort))
	}

	if c.Reminder.Interval < minReminderInterval {
		errs = errs.Append("reminder.interval", fmt.Errorf("must be at least %s", minReminderInterval))
	}

	if c.Reminder.Window <= 0 {
		errs = errs.Append("reminder.window", fmt.Errorf("must be positive"))
	}

	if c.Notify.Timeout < 0 {
		errs = errs.Append("notify.timeout", fmt.Errorf("cannot be negative"))
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q: must be one of %s", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate plus filesystem checks on the config file and
// the task store location, collecting every problem instead of stopping at the first.
func (c *Config) ValidateDeep(configPath string) *ValidationResult {
	result := &ValidationResult{}

	err := criterio.ValidateStruct(
		c.Validate(),
		validateConfigFile(configPath),
		criterio.Run("tasks_file", c.TasksPath(), notADirectory),
	)

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	} else if err != nil {
		result.Errors = append(result.Errors, ValidationError{Field: "config", Message: err.Error()})
	}

	if c.Reminder.Window > c.Reminder.Interval*24 {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Category: "reminder",
			Message:  "window is much longer than interval; tasks will be re-notified many times",
		})
	}

	return result
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func notADirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil // missing file is created on first write
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
