// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"plumb-cli/pkg/plumbfile"
)

type (
	// Pipeline is a composite command with all of its stages resolved
	// against the registry. Resolution happens once; the pipeline is then
	// reused across invocations.
	Pipeline struct {
		// Spec is the compiled descriptor the pipeline was built from.
		Spec *plumbfile.CommandSpec
		// Stages lists the resolved stages in execution order.
		Stages []*ResolvedStage
	}

	// Invocation is one run of a pipeline: the shared stage plan plus the
	// inject-value binding for this run.
	Invocation struct {
		// Pipeline is the resolved stage plan.
		Pipeline *Pipeline
		// Injected holds this run's inject-value binding. Nil when the
		// command declares no inject_values.
		Injected *InjectedValues
	}
)

// CompilePipeline resolves every stage of a compiled command into a
// reusable pipeline.
func (r *Registry) CompilePipeline(spec *plumbfile.CommandSpec) (*Pipeline, error) {
	stages, err := r.ResolveStages(spec)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Spec: spec, Stages: stages}, nil
}

// NewInvocation binds the pipeline's inject_values against the outer
// command's resolved parameter values for one run. Each call builds an
// independent binding.
func (p *Pipeline) NewInvocation(outer map[string]any) (*Invocation, error) {
	inv := &Invocation{Pipeline: p}
	if len(p.Spec.InjectValues) > 0 {
		injected, err := BindInjectValues(p.Spec.InjectValues, outer)
		if err != nil {
			return nil, err
		}
		inv.Injected = injected
	}
	return inv, nil
}
