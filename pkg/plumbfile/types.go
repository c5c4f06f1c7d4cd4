// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	"errors"
	"fmt"
)

const (
	// ParamTypeInt is for integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeString is for string-valued parameters.
	ParamTypeString ParamType = "str"
	// ParamTypeBool is for boolean-valued parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeFloat is for floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// ErrUnknownType is returned when a type name does not resolve to one of
// the recognized parameter types and no default type is available.
var ErrUnknownType = errors.New("unknown parameter type")

type (
	// ParamType is the primitive value type of an option or argument.
	// The zero value ("") means the type was left unset by the
	// configuration; downstream consumers treat unset as "no coercion".
	ParamType string

	// UnknownTypeError is returned when a type name is not recognized.
	// It wraps ErrUnknownType for errors.Is() compatibility.
	UnknownTypeError struct {
		Name string
	}
)

// paramTypes is the process-wide type table. It is built once and never
// mutated after package initialization.
var paramTypes = map[string]ParamType{
	"int":   ParamTypeInt,
	"str":   ParamTypeString,
	"bool":  ParamTypeBool,
	"float": ParamTypeFloat,
}

// Error implements the error interface for UnknownTypeError.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown parameter type %q (valid: int, str, bool, float)", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

// ResolveType maps a textual type name to its ParamType.
// Unrecognized names fail with an UnknownTypeError.
func ResolveType(name string) (ParamType, error) {
	if pt, ok := paramTypes[name]; ok {
		return pt, nil
	}
	return "", &UnknownTypeError{Name: name}
}

// ResolveTypeDefault maps a textual type name to its ParamType, falling
// back to def when the name is not recognized. Fields that declare a
// default type never fail type resolution; fields without one must go
// through ResolveType instead.
func ResolveTypeDefault(name string, def ParamType) ParamType {
	if pt, ok := paramTypes[name]; ok {
		return pt
	}
	return def
}

// IsValid returns whether the ParamType is one of the defined types,
// and a list of validation errors if it is not.
// The zero value ("") is valid and means "unset".
func (pt ParamType) IsValid() (bool, []error) {
	switch pt {
	case ParamTypeInt, ParamTypeString, ParamTypeBool, ParamTypeFloat, "":
		return true, nil
	default:
		return false, []error{&UnknownTypeError{Name: string(pt)}}
	}
}

// String returns the string representation of the ParamType.
func (pt ParamType) String() string {
	return string(pt)
}
