// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	"strconv"
	"strings"
)

const (
	// SeverityError indicates a validation failure that prevents the
	// definition from being compiled.
	SeverityError ValidationSeverity = iota
	// SeverityWarning indicates a potential issue that does not prevent
	// compilation.
	SeverityWarning
)

type (
	// ValidationSeverity indicates the severity level of a validation issue.
	ValidationSeverity int

	// ValidatorName identifies the validation layer that produced an
	// issue (e.g. "schema", "structure", "naming").
	ValidatorName string

	// ValidationError is a single issue found while compiling a
	// plumbfile definition.
	ValidationError struct {
		// Validator names the layer that produced the error.
		Validator ValidatorName
		// Field is the field path the error applies to
		// (e.g. "command 'jsonl2csv' option 'exit-code' nargs").
		Field string
		// Message is the human-readable error message.
		Message string
		// Severity indicates whether this is an error or a warning.
		Severity ValidationSeverity
	}

	// ValidationErrors collects every issue from one compilation pass.
	// The compiler never fails fast: a single compile reports the
	// complete set of problems at once.
	ValidationErrors []ValidationError

	// FieldPath builds hierarchical field paths for error messages,
	// such as "command 'deploy' stage #2 remap #1 old".
	FieldPath struct {
		parts []string
	}
)

// String returns a human-readable representation of the severity level.
func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// IsError returns true for error-level issues.
func (e ValidationError) IsError() bool {
	return e.Severity == SeverityError
}

// Error implements the error interface by joining all messages.
func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	var b strings.Builder
	b.WriteString("validation failed with ")
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" problems:")
	for _, err := range errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// HasErrors returns true if any issue is error-level.
func (errs ValidationErrors) HasErrors() bool {
	for _, e := range errs {
		if e.IsError() {
			return true
		}
	}
	return false
}

// ByField groups messages by their field path. Nested schema failures
// keep their parent path prefix, so callers receive one flat mapping for
// the whole definition.
func (errs ValidationErrors) ByField() map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	fields := make(map[string][]string)
	for _, e := range errs {
		fields[e.Field] = append(fields[e.Field], e.Message)
	}
	return fields
}

// ForField returns the messages recorded against one field path.
func (errs ValidationErrors) ForField(field string) []string {
	var msgs []string
	for _, e := range errs {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// NewFieldPath creates an empty FieldPath builder.
func NewFieldPath() *FieldPath {
	return &FieldPath{}
}

// String returns the complete field path.
func (p *FieldPath) String() string {
	return strings.Join(p.parts, " ")
}

// Command adds a command context to the path.
func (p *FieldPath) Command(name string) *FieldPath {
	p.parts = append(p.parts, "command '"+name+"'")
	return p
}

// CommandIndex adds a command context by index (1-indexed for display).
func (p *FieldPath) CommandIndex(index int) *FieldPath {
	p.parts = append(p.parts, "command #"+strconv.Itoa(index+1))
	return p
}

// Option adds an option context to the path.
func (p *FieldPath) Option(name string) *FieldPath {
	p.parts = append(p.parts, "option '"+name+"'")
	return p
}

// OptionIndex adds an option context by index (1-indexed for display).
func (p *FieldPath) OptionIndex(index int) *FieldPath {
	p.parts = append(p.parts, "option #"+strconv.Itoa(index+1))
	return p
}

// Argument adds an argument context to the path.
func (p *FieldPath) Argument(name string) *FieldPath {
	p.parts = append(p.parts, "argument '"+name+"'")
	return p
}

// ArgumentIndex adds an argument context by index (1-indexed for display).
func (p *FieldPath) ArgumentIndex(index int) *FieldPath {
	p.parts = append(p.parts, "argument #"+strconv.Itoa(index+1))
	return p
}

// Stage adds a stage context to the path (1-indexed for display).
func (p *FieldPath) Stage(index int) *FieldPath {
	p.parts = append(p.parts, "stage #"+strconv.Itoa(index+1))
	return p
}

// Remap adds a remap context to the path (1-indexed for display).
func (p *FieldPath) Remap(index int) *FieldPath {
	p.parts = append(p.parts, "remap #"+strconv.Itoa(index+1))
	return p
}

// Test adds a test-spec context to the path (1-indexed for display).
func (p *FieldPath) Test(index int) *FieldPath {
	p.parts = append(p.parts, "test #"+strconv.Itoa(index+1))
	return p
}

// Field adds a plain field name to the path.
func (p *FieldPath) Field(name string) *FieldPath {
	p.parts = append(p.parts, name)
	return p
}

// Copy returns a copy of the FieldPath for branching into sub-contexts.
func (p *FieldPath) Copy() *FieldPath {
	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	return &FieldPath{parts: parts}
}
