// SPDX-License-Identifier: MPL-2.0

package plumbfile

// ArgumentSpec is the validated descriptor of a positional argument.
type ArgumentSpec struct {
	// ParamDecls holds the argument's textual aliases. Today a
	// definition contributes exactly one alias.
	ParamDecls []string
	// Type is the value type for coercion; defaults to str, and
	// unrecognized type names silently fall back to str as well.
	Type ParamType
	// Required marks the argument as mandatory. Defaults to true.
	Required bool
	// NArgs is the expected value count; -1 means variadic. Nil when
	// the definition left it unset (exactly one value).
	NArgs *int
}

// argumentFields declares the argument schema.
var argumentFields = []fieldKey{
	fieldAs("param_decls", "name"),
	field("type"),
	field("required"),
	field("nargs"),
}

// Name returns the argument's primary alias.
func (a *ArgumentSpec) Name() string {
	if len(a.ParamDecls) == 0 {
		return ""
	}
	return a.ParamDecls[0]
}

// CanonicalName returns the identifier a stage uses to reference this
// argument.
func (a *ArgumentSpec) CanonicalName() string {
	return CanonicalParamName(a.Name())
}

// IsVariadic reports whether the argument accepts an unbounded value list.
func (a *ArgumentSpec) IsVariadic() bool {
	return a.NArgs != nil && *a.NArgs == -1
}

// compileArgument validates one raw argument object and builds its
// descriptor.
func compileArgument(raw map[string]any, path *FieldPath, pol NamePolicy) (*ArgumentSpec, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(argumentFields...)

	nameField := argumentFields[0]
	var decls []string
	if rawName, ok := d.lookup(nameField); !ok {
		d.fail(nameField, "missing required field")
	} else if s, isStr := asString(rawName); !isStr {
		d.fail(nameField, "expected a string")
	} else if errs := pol.CheckArgument(ArgumentName(s)); len(errs) > 0 {
		for _, err := range errs {
			d.fail(nameField, err.Error())
		}
	} else {
		decls = ArgumentName(s).Decls()
	}

	// The type field carries a default, so unknown names resolve to it
	// instead of failing; only a non-string value is a schema error.
	typ := ParamTypeString
	if rawType, ok := d.lookup(field("type")); ok {
		if s, isStr := asString(rawType); !isStr {
			d.fail(field("type"), "expected a type name string")
		} else {
			typ = ResolveTypeDefault(s, ParamTypeString)
		}
	}

	required := d.optionalBool(field("required"), true)

	nargs := d.optionalIntPtr(field("nargs"))
	if nargs != nil && *nargs != -1 && *nargs < 1 {
		d.fail(field("nargs"), "must be a positive count, or -1 for variadic")
	}

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &ArgumentSpec{
		ParamDecls: decls,
		Type:       typ,
		Required:   required,
		NArgs:      nargs,
	}, nil
}
