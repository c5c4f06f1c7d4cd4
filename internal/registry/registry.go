// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"sort"

	"plumb-cli/pkg/plumbfile"
)

type (
	// Param is one canonical parameter of a registered command. Names are
	// already canonicalized (no dashes) so stage remaps and overrides can
	// reference them directly.
	Param struct {
		// Name is the canonical parameter identifier.
		Name string
		// Default is the declared default, meaningful when HasDefault is
		// true.
		Default any
		// HasDefault reports whether the command declares a default.
		HasDefault bool
		// Required marks parameters that must receive a value.
		Required bool
	}

	// Command is a registered command: a built-in base command or a
	// compiled plumbfile command. Spec is nil for built-ins.
	Command struct {
		// Name is the registered command name.
		Name string
		// Description is the one-line help text.
		Description string
		// Params lists the command's canonical parameters in declaration
		// order.
		Params []Param
		// Spec is the compiled descriptor for plumbfile-defined commands.
		Spec *plumbfile.CommandSpec
	}

	// Registry maps command names to registered commands. The zero value
	// is not usable; construct with New or NewWithBuiltins.
	Registry struct {
		commands map[string]*Command
		order    []string
	}
)

// Param returns the command's parameter with the given canonical name,
// or nil when the command has no such parameter.
func (c *Command) Param(name string) *Param {
	for i := range c.Params {
		if c.Params[i].Name == name {
			return &c.Params[i]
		}
	}
	return nil
}

// ParamNames returns the command's canonical parameter names in
// declaration order.
func (c *Command) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// NewWithBuiltins creates a registry pre-populated with the built-in
// base commands.
func NewWithBuiltins() *Registry {
	r := New()
	for _, cmd := range Builtins() {
		// Builtins carry distinct names; a collision here is a
		// programming error.
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a command to the registry. Names are first-come,
// first-served: registering a taken name returns DuplicateCommandError.
func (r *Registry) Register(cmd *Command) error {
	if _, taken := r.commands[cmd.Name]; taken {
		return &DuplicateCommandError{Name: cmd.Name}
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
	return nil
}

// RegisterSpec derives a registry command from a compiled plumbfile
// command and registers it. Arguments and options contribute parameters
// under their canonical names, arguments first.
func (r *Registry) RegisterSpec(spec *plumbfile.CommandSpec) error {
	cmd := &Command{
		Name:        spec.Name,
		Description: spec.ShortHelp,
		Spec:        spec,
	}
	if cmd.Description == "" {
		cmd.Description = spec.Help
	}
	for _, arg := range spec.Arguments {
		cmd.Params = append(cmd.Params, Param{
			Name:     arg.CanonicalName(),
			Required: arg.Required,
		})
	}
	for _, opt := range spec.Options {
		cmd.Params = append(cmd.Params, Param{
			Name:       opt.CanonicalName(),
			Default:    opt.Default,
			HasDefault: opt.HasDefault,
			Required:   opt.Required,
		})
	}
	return r.Register(cmd)
}

// Lookup returns the registered command with the given name.
func (r *Registry) Lookup(name string) (*Command, error) {
	cmd, ok := r.commands[name]
	if !ok {
		return nil, &UnknownCommandError{Name: name}
	}
	return cmd, nil
}

// Has reports whether a command name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.commands)
}
