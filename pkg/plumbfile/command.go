// SPDX-License-Identifier: MPL-2.0

package plumbfile

import "fmt"

// CommandSpec is the compiled, immutable definition of one composite
// command. It is constructed once when configuration is loaded and then
// handed to the CLI registration layer; nothing mutates it afterwards.
type CommandSpec struct {
	// Name is the new command's name. Uniqueness across a command set
	// is enforced by the registry, not here.
	Name string
	// Help is the long-form documentation. Empty means unset.
	Help string
	// ShortHelp is the single-line CLI description. Empty means unset.
	ShortHelp string
	// Arguments lists the command's positional arguments, in order.
	Arguments []*ArgumentSpec
	// Options lists the command's options, in order.
	Options []*OptionSpec
	// Stages is the ordered pipeline the command delegates to. A
	// command with zero stages has no defined execution, so the list is
	// required and must be non-empty.
	Stages []*CommandStage
	// InjectValues names outer parameters exposed read-only to every
	// stage's execution context during one invocation.
	InjectValues []string
	// TestSpecs carries the command's declared end-to-end scenarios.
	TestSpecs []*CommandTestSpec
	// Section is the documentation section label. Empty means unset.
	Section string
}

// commandFields declares the command schema. Stages are read from the
// "stage" key and test specs from the "test" key; both keep their plural
// field names in error reports.
var commandFields = []fieldKey{
	field("name"),
	field("help"),
	field("short_help"),
	field("arguments"),
	field("options"),
	fieldAs("stages", "stage"),
	field("inject_values"),
	fieldAs("test_specs", "test"),
	field("section"),
}

type (
	// compileConfig carries the knobs for one compilation pass.
	compileConfig struct {
		policy NamePolicy
	}

	// CompileOption configures a compilation pass.
	CompileOption func(*compileConfig)
)

// WithNamePolicy sets the dash-prefix policy applied to declared option
// and argument names. The default policy enforces nothing.
func WithNamePolicy(p NamePolicy) CompileOption {
	return func(c *compileConfig) {
		c.policy = p
	}
}

// CompileCommand compiles one raw command object into a CommandSpec.
// Every field-level and structural problem is collected before failing;
// on failure the returned error is a ValidationErrors value carrying the
// complete set.
func CompileCommand(raw map[string]any, opts ...CompileOption) (*CommandSpec, error) {
	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	path := commandPath(raw, -1)
	spec, errs := compileCommand(raw, path, cfg.policy)
	if errs != nil {
		return nil, errs
	}
	return spec, nil
}

// commandPath builds the error-path prefix for a command object, using
// its name when one is present and its position otherwise.
func commandPath(raw map[string]any, index int) *FieldPath {
	if name, ok := raw["name"].(string); ok && name != "" {
		return NewFieldPath().Command(name)
	}
	if index >= 0 {
		return NewFieldPath().CommandIndex(index)
	}
	return NewFieldPath()
}

// compileCommand runs the nested schemas and assembles the CommandSpec.
func compileCommand(raw map[string]any, path *FieldPath, pol NamePolicy) (*CommandSpec, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(commandFields...)

	name := d.requiredString(field("name"))
	help := d.optionalString(field("help"), "")
	shortHelp := d.optionalString(field("short_help"), "")
	section := d.optionalString(field("section"), "")

	arguments := make([]*ArgumentSpec, 0)
	if objs, ok := d.objectList(field("arguments"), false); ok {
		for i, obj := range objs {
			argPath := path.Copy().ArgumentIndex(i)
			if argName, named := obj["name"].(string); named && argName != "" {
				argPath = path.Copy().Argument(argName)
			}
			arg, errs := compileArgument(obj, argPath, pol)
			if errs != nil {
				d.merge(errs)
				continue
			}
			arguments = append(arguments, arg)
		}
	}

	options := make([]*OptionSpec, 0)
	if objs, ok := d.objectList(field("options"), false); ok {
		for i, obj := range objs {
			optPath := path.Copy().OptionIndex(i)
			if optName, named := obj["name"].(string); named && optName != "" {
				optPath = path.Copy().Option(optName)
			}
			opt, errs := compileOption(obj, optPath, pol)
			if errs != nil {
				d.merge(errs)
				continue
			}
			options = append(options, opt)
		}
	}

	stagesField := fieldAs("stages", "stage")
	stages := make([]*CommandStage, 0)
	if objs, ok := d.objectList(stagesField, true); ok {
		if len(objs) == 0 {
			d.fail(stagesField, "must contain at least one stage")
		}
		for i, obj := range objs {
			stage, errs := compileStage(obj, path.Copy().Stage(i))
			if errs != nil {
				d.merge(errs)
				continue
			}
			stages = append(stages, stage)
		}
	}

	injectValues := d.stringList(field("inject_values"), false)

	testSpecs := make([]*CommandTestSpec, 0)
	if objs, ok := d.objectList(fieldAs("test_specs", "test"), false); ok {
		for i, obj := range objs {
			ts, errs := compileTestSpec(obj, path.Copy().Test(i))
			if errs != nil {
				d.merge(errs)
				continue
			}
			testSpecs = append(testSpecs, ts)
		}
	}

	d.merge(checkParamUniqueness(path, arguments, options))

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &CommandSpec{
		Name:         name,
		Help:         help,
		ShortHelp:    shortHelp,
		Arguments:    arguments,
		Options:      options,
		Stages:       stages,
		InjectValues: injectValues,
		TestSpecs:    testSpecs,
		Section:      section,
	}, nil
}

// checkParamUniqueness rejects commands whose arguments and options
// collapse to the same canonical parameter identifier, which would make
// stage references ambiguous.
func checkParamUniqueness(path *FieldPath, arguments []*ArgumentSpec, options []*OptionSpec) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]string)

	record := func(canonical, display, fieldPath string) {
		if canonical == "" {
			return
		}
		if first, dup := seen[canonical]; dup {
			errs = append(errs, ValidationError{
				Validator: validatorStructure,
				Field:     fieldPath,
				Message:   fmt.Sprintf("parameter name %q collides with %s", canonical, first),
				Severity:  SeverityError,
			})
			return
		}
		seen[canonical] = display
	}

	for _, arg := range arguments {
		record(arg.CanonicalName(), "argument '"+arg.Name()+"'",
			path.Copy().Argument(arg.Name()).String())
	}
	for _, opt := range options {
		record(opt.CanonicalName(), "option '"+opt.Name()+"'",
			path.Copy().Option(opt.Name()).String())
	}
	return errs
}

// ParamNames returns the command's canonical parameter identifiers,
// arguments first, in declaration order.
func (c *CommandSpec) ParamNames() []string {
	names := make([]string, 0, len(c.Arguments)+len(c.Options))
	for _, arg := range c.Arguments {
		names = append(names, arg.CanonicalName())
	}
	for _, opt := range c.Options {
		names = append(names, opt.CanonicalName())
	}
	return names
}
