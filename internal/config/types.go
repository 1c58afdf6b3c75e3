// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// LogLevelDebug enables debug logging, including per-file skip reasons.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs override replacements and the index summary.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs only problems. This is the default.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs only failures.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidExcludePattern is returned when an index.exclude glob does not compile.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrInvalidDataDir is returned when a configured data directory is not absolute.
	ErrInvalidDataDir = errors.New("invalid data directory")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum severity written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidExcludePatternError is returned for a malformed index.exclude entry.
	InvalidExcludePatternError struct {
		Pattern string
	}

	// InvalidDataDirError is returned when a data directory setting is relative.
	InvalidDataDirError struct {
		Field string
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Log controls diagnostic output.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log" yaml:"log"`
		// Index controls where application descriptors are discovered.
		Index IndexConfig `json:"index" mapstructure:"index" toml:"index" yaml:"index"`
	}

	// LogConfig configures the stderr logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level" yaml:"level"`
	}

	// IndexConfig configures the discovery roots.
	IndexConfig struct {
		// SystemDirs replaces XDG_DATA_DIRS when non-empty. Entries are listed
		// highest precedence first, the same as the environment variable.
		SystemDirs []string `json:"system_dirs" mapstructure:"system_dirs" toml:"system_dirs" yaml:"system_dirs"`
		// UserDir replaces XDG_DATA_HOME when set.
		UserDir string `json:"user_dir" mapstructure:"user_dir" toml:"user_dir" yaml:"user_dir"`
		// Exclude lists doublestar globs matched against descriptor paths.
		Exclude []string `json:"exclude" mapstructure:"exclude" toml:"exclude" yaml:"exclude"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: LogLevelWarn},
		Index: IndexConfig{
			SystemDirs: []string{},
			Exclude:    []string{},
		},
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
// The empty value is accepted and means the default.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface.
func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q", e.Pattern)
}

// Unwrap returns ErrInvalidExcludePattern for errors.Is() compatibility.
func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }

// Error implements the error interface.
func (e *InvalidDataDirError) Error() string {
	return fmt.Sprintf("%s: %q is not an absolute path", e.Field, e.Value)
}

// Unwrap returns ErrInvalidDataDir for errors.Is() compatibility.
func (e *InvalidDataDirError) Unwrap() error { return ErrInvalidDataDir }

// IsValid returns whether the IndexConfig has valid fields.
func (c IndexConfig) IsValid() (bool, []error) {
	var errs []error
	for i, dir := range c.SystemDirs {
		if !filepath.IsAbs(dir) {
			errs = append(errs, &InvalidDataDirError{Field: fmt.Sprintf("index.system_dirs[%d]", i), Value: dir})
		}
	}
	if c.UserDir != "" && !filepath.IsAbs(expandHome(c.UserDir)) {
		errs = append(errs, &InvalidDataDirError{Field: "index.user_dir", Value: c.UserDir})
	}
	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" || !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &InvalidExcludePatternError{Pattern: pattern})
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields.
// It delegates to IsValid() on each field that implements the validator interface.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Index.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
