package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "terminal.width")
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

// socketNameRegex validates tmux socket names.
// The socket becomes a file name under /tmp/tmux-{uid}/, so keep it to a safe charset.
var socketNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTool()...)
	errors = append(errors, c.validateTerminal()...)
	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateTool validates the ToolConfig
func (c *Config) validateTool() []ValidationError {
	var errors []ValidationError

	required := []struct {
		field string
		value string
	}{
		{"tool.build_command", c.Tool.BuildCommand},
		{"tool.run_command", c.Tool.RunCommand},
		{"tool.logs_command", c.Tool.LogsCommand},
		{"tool.default_instance", c.Tool.DefaultInstance},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errors = append(errors, ValidationError{
				Field:   r.field,
				Value:   r.value,
				Message: "must not be empty",
			})
		}
	}

	if strings.ContainsAny(c.Tool.DefaultInstance, " \t\n") {
		errors = append(errors, ValidationError{
			Field:   "tool.default_instance",
			Value:   c.Tool.DefaultInstance,
			Message: "must not contain whitespace",
		})
	}

	return errors
}

// validateTerminal validates the TerminalConfig
func (c *Config) validateTerminal() []ValidationError {
	var errors []ValidationError

	if !socketNameRegex.MatchString(c.Terminal.Socket) {
		errors = append(errors, ValidationError{
			Field:   "terminal.socket",
			Value:   c.Terminal.Socket,
			Message: "must start with a letter and contain only letters, digits, hyphens and underscores",
		})
	}

	const minWidth = 80
	const maxWidth = 500
	const minHeight = 10
	const maxHeight = 200

	if c.Terminal.Width < minWidth || c.Terminal.Width > maxWidth {
		errors = append(errors, ValidationError{
			Field:   "terminal.width",
			Value:   c.Terminal.Width,
			Message: fmt.Sprintf("must be between %d and %d columns", minWidth, maxWidth),
		})
	}
	if c.Terminal.Height < minHeight || c.Terminal.Height > maxHeight {
		errors = append(errors, ValidationError{
			Field:   "terminal.height",
			Value:   c.Terminal.Height,
			Message: fmt.Sprintf("must be between %d and %d rows", minHeight, maxHeight),
		})
	}

	// 0 leaves the tmux server default untouched
	const maxHistoryLimit = 1_000_000
	if c.Terminal.HistoryLimit < 0 || c.Terminal.HistoryLimit > maxHistoryLimit {
		errors = append(errors, ValidationError{
			Field:   "terminal.history_limit",
			Value:   c.Terminal.HistoryLimit,
			Message: fmt.Sprintf("must be between 0 and %d lines", maxHistoryLimit),
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	const maxDebounceMs = 10_000
	if c.Watch.DebounceMs < 0 || c.Watch.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: fmt.Sprintf("must be between 0 and %dms", maxDebounceMs),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
