// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"plumb-cli/pkg/plumbfile"
)

type (
	// ResolvedParam is one parameter of a resolved stage: the stage-local
	// name the configuration used, the base command's canonical name it
	// maps back to, and the value that won resolution.
	ResolvedParam struct {
		// Name is the stage-local identifier, after remaps.
		Name string
		// BaseName is the canonical identifier in the base command.
		BaseName string
		// Value is the resolved value, meaningful when HasValue is true.
		Value any
		// HasValue reports whether an override or a default supplied a
		// value. Required parameters without either stay unfilled and are
		// expected from the invocation.
		HasValue bool
		// FromOverride distinguishes stage-literal overrides from base
		// command defaults.
		FromOverride bool
	}

	// ResolvedStage is one stage of a composite command with its remaps
	// applied and its overrides reconciled against the base command's
	// parameter set.
	ResolvedStage struct {
		// Command is the stage's base command.
		Command *Command
		// Params lists the resolved parameters in the base command's
		// declaration order.
		Params []ResolvedParam
	}
)

// Param returns the resolved parameter with the given stage-local name,
// or nil when the stage has no such parameter.
func (s *ResolvedStage) Param(name string) *ResolvedParam {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return &s.Params[i]
		}
	}
	return nil
}

// ResolveStage reconciles one stage declaration against the registry.
//
// The base command must be registered. Every remap's old name must be a
// parameter of the base command, and no remap may land on a stage-local
// name already taken by an unrenamed parameter. Every params key must
// name a stage-local parameter; matching keys replace the base
// command's defaults, everything else keeps them.
func (r *Registry) ResolveStage(stage *plumbfile.CommandStage) (*ResolvedStage, error) {
	base, err := r.Lookup(stage.Command)
	if err != nil {
		return nil, err
	}

	for _, remap := range stage.RemapParams {
		if base.Param(remap.Old) == nil {
			return nil, &UnknownParameterError{Command: base.Name, Name: remap.Old}
		}
	}

	resolved := &ResolvedStage{
		Command: base,
		Params:  make([]ResolvedParam, 0, len(base.Params)),
	}
	local := make(map[string]int, len(base.Params))
	for _, p := range base.Params {
		name := stage.RenameOf(p.Name)
		if _, taken := local[name]; taken {
			return nil, &AmbiguousParameterError{Command: base.Name, Name: name}
		}
		local[name] = len(resolved.Params)
		resolved.Params = append(resolved.Params, ResolvedParam{
			Name:     name,
			BaseName: p.Name,
			Value:    p.Default,
			HasValue: p.HasDefault,
		})
	}

	for key, value := range stage.Params {
		idx, ok := local[key]
		if !ok {
			return nil, &UnknownParameterError{Command: base.Name, Name: key}
		}
		resolved.Params[idx].Value = value
		resolved.Params[idx].HasValue = true
		resolved.Params[idx].FromOverride = true
	}

	return resolved, nil
}

// ResolveStages resolves every stage of a compiled command, in order.
// The first failing stage aborts resolution.
func (r *Registry) ResolveStages(spec *plumbfile.CommandSpec) ([]*ResolvedStage, error) {
	stages := make([]*ResolvedStage, 0, len(spec.Stages))
	for _, stage := range spec.Stages {
		resolved, err := r.ResolveStage(stage)
		if err != nil {
			return nil, err
		}
		stages = append(stages, resolved)
	}
	return stages, nil
}
