// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned when a stage references a command
	// name that is not registered.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownParameter is returned when a stage override or remap
	// references a parameter the base command does not have.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrAmbiguousParameter is returned when a remap makes two
	// parameters share one stage-local name.
	ErrAmbiguousParameter = errors.New("ambiguous parameter")
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrMissingInjectValue is returned when an inject_values name has
	// no value in the outer command's resolved parameters.
	ErrMissingInjectValue = errors.New("missing inject value")
)

type (
	// UnknownCommandError names the unregistered command a stage
	// referenced. It wraps ErrUnknownCommand for errors.Is()
	// compatibility.
	UnknownCommandError struct {
		Name string
	}

	// UnknownParameterError names the parameter a stage referenced but
	// the base command does not have (after remap resolution). It wraps
	// ErrUnknownParameter.
	UnknownParameterError struct {
		Command string
		Name    string
	}

	// AmbiguousParameterError names a stage-local identifier claimed by
	// more than one base parameter. It wraps ErrAmbiguousParameter.
	AmbiguousParameterError struct {
		Command string
		Name    string
	}

	// DuplicateCommandError names a command registered twice. It wraps
	// ErrDuplicateCommand.
	DuplicateCommandError struct {
		Name string
	}

	// MissingInjectValueError names an inject_values entry absent from
	// the outer command's resolved values. It wraps
	// ErrMissingInjectValue.
	MissingInjectValueError struct {
		Name string
	}
)

// Error implements the error interface for UnknownCommandError.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// Error implements the error interface for UnknownParameterError.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("command %q has no parameter %q", e.Command, e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnknownParameterError) Unwrap() error {
	return ErrUnknownParameter
}

// Error implements the error interface for AmbiguousParameterError.
func (e *AmbiguousParameterError) Error() string {
	return fmt.Sprintf("parameter %q of command %q is claimed by more than one remap target", e.Name, e.Command)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *AmbiguousParameterError) Unwrap() error {
	return ErrAmbiguousParameter
}

// Error implements the error interface for DuplicateCommandError.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *DuplicateCommandError) Unwrap() error {
	return ErrDuplicateCommand
}

// Error implements the error interface for MissingInjectValueError.
func (e *MissingInjectValueError) Error() string {
	return fmt.Sprintf("inject value %q is not a resolved parameter of the outer command", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *MissingInjectValueError) Unwrap() error {
	return ErrMissingInjectValue
}
