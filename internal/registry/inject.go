// SPDX-License-Identifier: MPL-2.0

package registry

import "sort"

// InjectedValues is the read-only binding of a composite command's
// inject_values for one invocation. Stages of the same invocation share
// one binding; a fresh invocation gets a fresh binding, so values never
// leak across runs.
type InjectedValues struct {
	values map[string]any
}

// BindInjectValues builds the per-invocation binding. Every requested
// name must be present in the outer command's resolved values.
func BindInjectValues(names []string, resolved map[string]any) (*InjectedValues, error) {
	values := make(map[string]any, len(names))
	for _, name := range names {
		v, ok := resolved[name]
		if !ok {
			return nil, &MissingInjectValueError{Name: name}
		}
		values[name] = v
	}
	return &InjectedValues{values: values}, nil
}

// Get returns the injected value for name.
func (iv *InjectedValues) Get(name string) (any, bool) {
	if iv == nil {
		return nil, false
	}
	v, ok := iv.values[name]
	return v, ok
}

// Names returns the bound names, sorted.
func (iv *InjectedValues) Names() []string {
	if iv == nil {
		return nil
	}
	names := make([]string, 0, len(iv.values))
	for name := range iv.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound values.
func (iv *InjectedValues) Len() int {
	if iv == nil {
		return 0
	}
	return len(iv.values)
}
