// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	"fmt"
	"sort"
)

// validatorSchema names the decode layer in validation errors.
const validatorSchema ValidatorName = "schema"

type (
	// fieldKey pairs a declared field name with the external
	// configuration key it is read from. Most fields use the same
	// identifier for both; the exceptions (options and arguments read
	// their alias list from "name", a command reads stages from "stage"
	// and test specs from "test") come straight from the configuration
	// format this compiler accepts.
	fieldKey struct {
		name string
		key  string
	}

	// decoder reads declared fields out of one raw configuration object,
	// applying external-key lookup, default substitution, and required
	// policy. Failures accumulate instead of aborting, so one pass over
	// a schema reports every field-level problem at once.
	decoder struct {
		raw  map[string]any
		path *FieldPath
		errs ValidationErrors
	}
)

// field declares a field whose external key matches its name.
func field(name string) fieldKey {
	return fieldKey{name: name, key: name}
}

// fieldAs declares a field read from a differently-named external key.
func fieldAs(name, key string) fieldKey {
	return fieldKey{name: name, key: key}
}

func newDecoder(raw map[string]any, path *FieldPath) *decoder {
	return &decoder{raw: raw, path: path}
}

// fail records an error-level issue against a declared field.
func (d *decoder) fail(f fieldKey, msg string) {
	d.errs = append(d.errs, ValidationError{
		Validator: validatorSchema,
		Field:     d.path.Copy().Field(f.name).String(),
		Message:   msg,
		Severity:  SeverityError,
	})
}

// merge appends issues produced by a nested schema.
func (d *decoder) merge(errs ValidationErrors) {
	d.errs = append(d.errs, errs...)
}

// finish returns every accumulated issue, or nil when the object decoded
// cleanly.
func (d *decoder) finish() ValidationErrors {
	if len(d.errs) == 0 {
		return nil
	}
	return d.errs
}

// rejectUnknown records an error for every raw key the schema does not
// declare. Sorted so repeated compiles report identical error lists.
func (d *decoder) rejectUnknown(declared ...fieldKey) {
	known := make(map[string]struct{}, len(declared))
	for _, f := range declared {
		known[f.key] = struct{}{}
	}
	var unknown []string
	for k := range d.raw {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		d.errs = append(d.errs, ValidationError{
			Validator: validatorSchema,
			Field:     d.path.Copy().Field(k).String(),
			Message:   "unknown field",
			Severity:  SeverityError,
		})
	}
}

// lookup fetches the raw value for a field's external key.
func (d *decoder) lookup(f fieldKey) (any, bool) {
	v, ok := d.raw[f.key]
	return v, ok
}

// requiredString reads a required string field. A missing or mistyped
// value records an error and returns "".
func (d *decoder) requiredString(f fieldKey) string {
	raw, ok := d.lookup(f)
	if !ok {
		d.fail(f, "missing required field")
		return ""
	}
	s, ok := asString(raw)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a string, got %T", raw))
		return ""
	}
	return s
}

// optionalString reads an optional string field, substituting def when
// the key is absent.
func (d *decoder) optionalString(f fieldKey, def string) string {
	raw, ok := d.lookup(f)
	if !ok {
		return def
	}
	s, ok := asString(raw)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a string, got %T", raw))
		return def
	}
	return s
}

// optionalBool reads an optional boolean field, substituting def when
// the key is absent.
func (d *decoder) optionalBool(f fieldKey, def bool) bool {
	raw, ok := d.lookup(f)
	if !ok {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a boolean, got %T", raw))
		return def
	}
	return b
}

// optionalBoolPtr reads an optional boolean field whose absence must stay
// distinguishable from false.
func (d *decoder) optionalBoolPtr(f fieldKey) *bool {
	raw, ok := d.lookup(f)
	if !ok {
		return nil
	}
	b, ok := raw.(bool)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a boolean, got %T", raw))
		return nil
	}
	return &b
}

// optionalIntPtr reads an optional integer field whose absence must stay
// distinguishable from zero.
func (d *decoder) optionalIntPtr(f fieldKey) *int {
	raw, ok := d.lookup(f)
	if !ok {
		return nil
	}
	n, ok := asInt(raw)
	if !ok {
		d.fail(f, fmt.Sprintf("expected an integer, got %T", raw))
		return nil
	}
	return &n
}

// anyValue reads a field that accepts any raw value unchanged. The
// second return reports presence, keeping the absent marker distinct
// from an explicit null.
func (d *decoder) anyValue(f fieldKey) (any, bool) {
	return d.lookup(f)
}

// stringList reads a list-of-strings field. Absent optional lists decode
// to an empty (non-nil) slice so compiled specs compare equal regardless
// of which defaults fired.
func (d *decoder) stringList(f fieldKey, required bool) []string {
	raw, ok := d.lookup(f)
	if !ok {
		if required {
			d.fail(f, "missing required field")
		}
		return []string{}
	}
	items, ok := asList(raw)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a list, got %T", raw))
		return []string{}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := asString(item)
		if !ok {
			d.fail(f, fmt.Sprintf("element #%d: expected a string, got %T", i+1, item))
			continue
		}
		out = append(out, s)
	}
	return out
}

// stringMap reads a map-of-strings field, defaulting to an empty map.
func (d *decoder) stringMap(f fieldKey) map[string]string {
	raw, ok := d.lookup(f)
	if !ok {
		return map[string]string{}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a mapping, got %T", raw))
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := asString(v)
		if !ok {
			d.fail(f, fmt.Sprintf("key %q: expected a string value, got %T", k, v))
			continue
		}
		out[k] = s
	}
	return out
}

// objectList reads a list-of-objects field. The bool return reports
// whether the key was present at all, so required-list policy stays with
// the caller.
func (d *decoder) objectList(f fieldKey, required bool) ([]map[string]any, bool) {
	raw, ok := d.lookup(f)
	if !ok {
		if required {
			d.fail(f, "missing required field")
		}
		return nil, false
	}
	items, ok := asList(raw)
	if !ok {
		d.fail(f, fmt.Sprintf("expected a list, got %T", raw))
		return nil, false
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			d.fail(f, fmt.Sprintf("element #%d: expected an object, got %T", i+1, item))
			continue
		}
		out = append(out, obj)
	}
	return out, true
}

// asString converts raw configuration scalars to string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asList accepts both []any (TOML, CUE maps) and []string.
func asList(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// asInt accepts the integer shapes the supported decoders produce:
// int from CUE, int64 from TOML, and float64 when a frontend routes
// numbers through JSON-style decoding.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
