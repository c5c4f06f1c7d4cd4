// SPDX-License-Identifier: MPL-2.0

package registry

// Builtins returns the base commands every registry starts from.
// Plumbfile commands compose these (and each other) through stages.
func Builtins() []*Command {
	return []*Command{
		{
			Name:        "eval",
			Description: "Evaluate an expression once and emit the result",
			Params: []Param{
				{Name: "code", Required: true},
			},
		},
		{
			Name:        "map",
			Description: "Apply an expression to each input item",
			Params: []Param{
				{Name: "code", Required: true},
			},
		},
		{
			Name:        "filter",
			Description: "Keep input items for which the expression is truthy",
			Params: []Param{
				{Name: "code", Required: true},
			},
		},
		{
			Name:        "apply",
			Description: "Apply an expression to the whole input at once",
			Params: []Param{
				{Name: "code", Required: true},
			},
		},
		{
			Name:        "reduce",
			Description: "Fold input items with a binary function",
			Params: []Param{
				{Name: "function", Required: true},
				{Name: "initial", Default: "", HasDefault: true},
			},
		},
		{
			Name:        "chain",
			Description: "Flatten one level of nesting in the input",
		},
	}
}
