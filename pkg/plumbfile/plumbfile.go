// SPDX-License-Identifier: MPL-2.0

package plumbfile

import "fmt"

// Plumbfile is the compiled content of one plumbfile: a set of composite
// command definitions plus file-level metadata.
type Plumbfile struct {
	// Version is the declared schema version, if any.
	Version string
	// Description summarizes the file's purpose, if declared.
	Description string
	// Commands holds the compiled definitions, in declaration order.
	Commands []*CommandSpec
	// FilePath records where the plumbfile was loaded from. Not part of
	// the configuration itself.
	FilePath string
}

var plumbfileFields = []fieldKey{
	field("version"),
	field("description"),
	field("cmds"),
}

// CompilePlumbfile compiles a raw plumbfile object. Per-command errors
// accumulate across the whole file, so a single compile reports problems
// in every definition at once.
func CompilePlumbfile(raw map[string]any, opts ...CompileOption) (*Plumbfile, error) {
	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d := newDecoder(raw, NewFieldPath())
	d.rejectUnknown(plumbfileFields...)

	version := d.optionalString(field("version"), "")
	description := d.optionalString(field("description"), "")

	commands := make([]*CommandSpec, 0)
	if objs, ok := d.objectList(field("cmds"), true); ok {
		if len(objs) == 0 {
			d.fail(field("cmds"), "must contain at least one command definition")
		}
		for i, obj := range objs {
			spec, errs := compileCommand(obj, commandPath(obj, i), cfg.policy)
			if errs != nil {
				d.merge(errs)
				continue
			}
			commands = append(commands, spec)
		}
	}

	seen := make(map[string]struct{}, len(commands))
	for _, spec := range commands {
		if _, dup := seen[spec.Name]; dup {
			d.errs = append(d.errs, ValidationError{
				Validator: validatorStructure,
				Field:     NewFieldPath().Command(spec.Name).String(),
				Message:   fmt.Sprintf("command %q is defined more than once in this file", spec.Name),
				Severity:  SeverityError,
			})
		}
		seen[spec.Name] = struct{}{}
	}

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &Plumbfile{
		Version:     version,
		Description: description,
		Commands:    commands,
	}, nil
}

// GetCommand finds a compiled command by name.
func (p *Plumbfile) GetCommand(name string) *CommandSpec {
	for _, spec := range p.Commands {
		if spec.Name == name {
			return spec
		}
	}
	return nil
}

// ListCommands returns the names of all compiled commands, in
// declaration order.
func (p *Plumbfile) ListCommands() []string {
	names := make([]string, len(p.Commands))
	for i, spec := range p.Commands {
		names[i] = spec.Name
	}
	return names
}
