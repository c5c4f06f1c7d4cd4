// SPDX-License-Identifier: MPL-2.0

package plumbfile

// CommandTestSpec is one literal end-to-end scenario for a composite
// command: the CLI arguments (excluding the program name), the stdin
// content, and the expected stdout. The compiler carries these for an
// external test runner; it does not execute them.
type CommandTestSpec struct {
	Invocation []string
	Input      string
	Output     string
}

var testSpecFields = []fieldKey{
	field("invocation"),
	field("input"),
	field("output"),
}

// compileTestSpec validates one raw test-spec object.
func compileTestSpec(raw map[string]any, path *FieldPath) (*CommandTestSpec, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(testSpecFields...)

	invocation := d.stringList(field("invocation"), true)
	input := d.requiredString(field("input"))
	output := d.requiredString(field("output"))

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &CommandTestSpec{
		Invocation: invocation,
		Input:      input,
		Output:     output,
	}, nil
}
