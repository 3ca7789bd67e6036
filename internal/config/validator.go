package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.sidebar_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEngine()...)
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateEngine() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Engine.Command) == "" {
		errors = append(errors, ValidationError{
			Field:   "engine.command",
			Value:   c.Engine.Command,
			Message: "decompiler command must not be empty",
		})
	}
	for key := range c.Engine.Options {
		if strings.ContainsAny(key, " =") {
			errors = append(errors, ValidationError{
				Field:   "engine.options",
				Value:   key,
				Message: "option keys must not contain spaces or '='",
			})
		}
	}

	return errors
}

func (c *Config) validateExport() []ValidationError {
	var errors []ValidationError

	if c.Export.Extension != "" && !strings.HasPrefix(c.Export.Extension, ".") {
		errors = append(errors, ValidationError{
			Field:   "export.extension",
			Value:   c.Export.Extension,
			Message: "extension must start with '.'",
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.SidebarWidth < 20 || c.TUI.SidebarWidth > 80 {
		errors = append(errors, ValidationError{
			Field:   "tui.sidebar_width",
			Value:   c.TUI.SidebarWidth,
			Message: "must be between 20 and 80",
		})
	}
	if c.TUI.HighlightCacheSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.highlight_cache_size",
			Value:   c.TUI.HighlightCacheSize,
			Message: "must not be negative",
		})
	}

	return errors
}

func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must not be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
