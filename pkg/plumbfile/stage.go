// SPDX-License-Identifier: MPL-2.0

package plumbfile

import "fmt"

// validatorStructure names the cross-field checks that run after
// individual fields decode cleanly.
const validatorStructure ValidatorName = "structure"

type (
	// RemapParam renames one parameter of a stage's base command: Old is
	// the identifier the base command understands, New is the identifier
	// the stage's configuration (and its params overrides) uses.
	RemapParam struct {
		New string
		Old string
	}

	// CommandStage is one step of a composite command. It references a
	// base command by name, renames some of its parameters, and pins
	// others to literal override values.
	CommandStage struct {
		// Command is the base command's registered name.
		Command string
		// RemapParams lists parameter renames, in declaration order.
		RemapParams []RemapParam
		// Params maps stage-local parameter names (post-remap) to
		// literal override values.
		Params map[string]string
	}
)

var (
	remapFields = []fieldKey{
		field("new"),
		field("old"),
	}
	stageFields = []fieldKey{
		field("command"),
		field("remap_params"),
		field("params"),
	}
)

// compileRemap validates one raw remap object.
func compileRemap(raw map[string]any, path *FieldPath) (RemapParam, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(remapFields...)

	newName := d.requiredString(field("new"))
	oldName := d.requiredString(field("old"))

	if errs := d.finish(); errs != nil {
		return RemapParam{}, errs
	}
	return RemapParam{New: newName, Old: oldName}, nil
}

// compileStage validates one raw stage object and builds it. On top of
// the per-field checks it rejects ambiguous remap sets: two renames
// targeting the same new name would make override resolution
// order-dependent, so they fail compilation instead.
func compileStage(raw map[string]any, path *FieldPath) (*CommandStage, ValidationErrors) {
	d := newDecoder(raw, path)
	d.rejectUnknown(stageFields...)

	command := d.requiredString(field("command"))

	remaps := make([]RemapParam, 0)
	if objs, ok := d.objectList(field("remap_params"), false); ok {
		for i, obj := range objs {
			remap, errs := compileRemap(obj, path.Copy().Remap(i))
			if errs != nil {
				d.merge(errs)
				continue
			}
			remaps = append(remaps, remap)
		}
	}

	seenNew := make(map[string]int, len(remaps))
	seenOld := make(map[string]int, len(remaps))
	for i, remap := range remaps {
		if first, dup := seenNew[remap.New]; dup {
			d.errs = append(d.errs, ValidationError{
				Validator: validatorStructure,
				Field:     path.Copy().Remap(i).Field("new").String(),
				Message:   fmt.Sprintf("duplicate remap target %q (already used by remap #%d)", remap.New, first+1),
				Severity:  SeverityError,
			})
		} else {
			seenNew[remap.New] = i
		}
		if first, dup := seenOld[remap.Old]; dup {
			d.errs = append(d.errs, ValidationError{
				Validator: validatorStructure,
				Field:     path.Copy().Remap(i).Field("old").String(),
				Message:   fmt.Sprintf("parameter %q is remapped twice (already renamed by remap #%d)", remap.Old, first+1),
				Severity:  SeverityError,
			})
		} else {
			seenOld[remap.Old] = i
		}
	}

	params := d.stringMap(field("params"))

	if errs := d.finish(); errs != nil {
		return nil, errs
	}

	return &CommandStage{
		Command:     command,
		RemapParams: remaps,
		Params:      params,
	}, nil
}

// RenameOf returns the stage-local name for a base parameter, applying
// the stage's remaps. Base parameters without a remap keep their
// canonical name.
func (s *CommandStage) RenameOf(baseParam string) string {
	for _, remap := range s.RemapParams {
		if remap.Old == baseParam {
			return remap.New
		}
	}
	return baseParam
}
