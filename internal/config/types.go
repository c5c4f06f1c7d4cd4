// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// LogLevelDebug enables debug and higher.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo enables info and higher.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn enables warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError enables errors only.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
	ErrInvalidSearchPath = errors.New("invalid search path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel selects the minimum log severity.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not
	// recognized. It wraps ErrInvalidLogLevel for errors.Is()
	// compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is()
	// compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// SearchPath is a filesystem directory searched for plumbfiles.
	// A valid path must be non-empty and not whitespace-only.
	SearchPath string

	// InvalidSearchPathError is returned when a SearchPath value is empty
	// or whitespace-only. It wraps ErrInvalidSearchPath for errors.Is().
	InvalidSearchPathError struct {
		Value SearchPath
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and
	// collects field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SearchPaths lists extra directories searched for plumbfiles, in
		// priority order after the working directory and the user
		// commands directory.
		SearchPaths []SearchPath `json:"search_paths" mapstructure:"search_paths"`
		// StrictNames enables the strict naming policy: options must
		// start with a dash, arguments must not.
		StrictNames bool `json:"strict_names" mapstructure:"strict_names"`
		// LogLevel sets the minimum log severity.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error {
	return ErrInvalidLogLevel
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color
// schemes, and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the SearchPath.
func (p SearchPath) String() string { return string(p) }

// IsValid returns whether the SearchPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p SearchPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSearchPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSearchPathError.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("invalid search path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// IsValid returns whether the Config has valid fields.
// It delegates to LogLevel.IsValid(), each SearchPaths entry's
// IsValid(), and UI.ColorScheme.IsValid(). StrictNames is a bool and
// needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, path := range c.SearchPaths {
		if valid, fieldErrs := path.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SearchPaths: []SearchPath{},
		StrictNames: false,
		LogLevel:    LogLevelInfo,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
