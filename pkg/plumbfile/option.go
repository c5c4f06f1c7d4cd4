// SPDX-License-Identifier: MPL-2.0

package plumbfile

import "strings"

// OptionSpec is the validated descriptor of a command-line option, ready
// for hand-off to the CLI registration layer.
//
// NArgs and Multiple use pointers so "never declared" stays
// distinguishable from an explicit zero value; the same goes for
// Default, whose presence is tracked by HasDefault so an absent default
// is not conflated with an explicit null.
type OptionSpec struct {
	// ParamDecls holds the option's textual aliases. Today a definition
	// contributes exactly one alias.
	ParamDecls []string
	// Type is the value type for coercion. Unset ("") means the option
	// carries no declared type.
	Type ParamType
	// IsFlag marks a boolean flag option.
	IsFlag bool
	// Help is the option's help text.
	Help string
	// Hidden hides the option from help output.
	Hidden bool
	// Required marks the option as mandatory.
	Required bool
	// NArgs is the expected value count; -1 means variadic. Nil when
	// the definition left it unset.
	NArgs *int
	// Multiple allows the option to be passed more than once. Nil when
	// the definition left it unset.
	Multiple *bool
	// Default is the declared default value, meaningful only when
	// HasDefault is true. It is kept uncoerced; the option's own Type
	// governs later coercion.
	Default any
	// HasDefault reports whether a default was declared at all.
	HasDefault bool
}

// optionFields declares the option schema: field names, external keys.
var optionFields = []fieldKey{
	fieldAs("param_decls", "name"),
	field("type"),
	field("is_flag"),
	field("help"),
	field("hidden"),
	field("required"),
	field("nargs"),
	field("multiple"),
	field("default"),
}

// Name returns the option's primary alias.
func (o *OptionSpec) Name() string {
	if len(o.ParamDecls) == 0 {
		return ""
	}
	return o.ParamDecls[0]
}

// CanonicalName returns the identifier a stage uses to reference this
// option: leading dashes stripped, inner dashes folded to underscores.
func (o *OptionSpec) CanonicalName() string {
	return CanonicalParamName(o.Name())
}

// IsVariadic reports whether the option accepts an unbounded value list.
func (o *OptionSpec) IsVariadic() bool {
	return o.NArgs != nil && *o.NArgs == -1
}

// CanonicalParamName normalizes a declared option or argument alias to
// the parameter identifier used in stage params and remaps.
func CanonicalParamName(decl string) string {
	name := strings.TrimLeft(decl, "-")
	return strings.ReplaceAll(name, "-", "_")
}

// compileOption validates one raw option object and builds its
// descriptor. All field errors are accumulated; a descriptor is only
// constructed when the object decoded cleanly.
func compileOption(raw map[string]any, path *FieldPath, pol NamePolicy) (*OptionSpec, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(optionFields...)

	nameField := optionFields[0]
	var decls []string
	if rawName, ok := d.lookup(nameField); !ok {
		d.fail(nameField, "missing required field")
	} else if s, isStr := asString(rawName); !isStr {
		d.fail(nameField, "expected a string")
	} else if errs := pol.CheckOption(OptionName(s)); len(errs) > 0 {
		for _, err := range errs {
			d.fail(nameField, err.Error())
		}
	} else {
		decls = OptionName(s).Decls()
	}

	var typ ParamType
	if rawType, ok := d.lookup(field("type")); ok {
		if s, isStr := asString(rawType); !isStr {
			d.fail(field("type"), "expected a type name string")
		} else if resolved, err := ResolveType(s); err != nil {
			d.fail(field("type"), err.Error())
		} else {
			typ = resolved
		}
	}

	isFlag := d.optionalBool(field("is_flag"), false)
	help := d.optionalString(field("help"), "")
	hidden := d.optionalBool(field("hidden"), false)
	required := d.optionalBool(field("required"), false)

	nargs := d.optionalIntPtr(field("nargs"))
	if nargs != nil && *nargs != -1 && *nargs < 1 {
		d.fail(field("nargs"), "must be a positive count, or -1 for variadic")
	}

	multiple := d.optionalBoolPtr(field("multiple"))
	def, hasDefault := d.anyValue(field("default"))

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &OptionSpec{
		ParamDecls: decls,
		Type:       typ,
		IsFlag:     isFlag,
		Help:       help,
		Hidden:     hidden,
		Required:   required,
		NArgs:      nargs,
		Multiple:   multiple,
		Default:    def,
		HasDefault: hasDefault,
	}, nil
}
