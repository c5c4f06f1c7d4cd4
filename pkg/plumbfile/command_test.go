// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// rawCommand builds a minimal valid raw command object. Callers mutate
// the returned map to shape each case.
func rawCommand() map[string]any {
	return map[string]any{
		"name": "jsonl2csv",
		"stage": []any{
			map[string]any{"command": "map", "params": map[string]any{"code": "to_csv(obj)"}},
		},
	}
}

func TestCompileCommandMinimal(t *testing.T) {
	t.Parallel()

	spec, err := CompileCommand(rawCommand())
	if err != nil {
		t.Fatalf("CompileCommand() returned error: %v", err)
	}

	if spec.Name != "jsonl2csv" {
		t.Errorf("Name = %q", spec.Name)
	}
	if len(spec.Stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(spec.Stages))
	}
	if spec.Stages[0].Command != "map" {
		t.Errorf("stage command = %q", spec.Stages[0].Command)
	}
	if spec.Stages[0].Params["code"] != "to_csv(obj)" {
		t.Errorf("stage params = %v", spec.Stages[0].Params)
	}
	if len(spec.Arguments) != 0 || len(spec.Options) != 0 {
		t.Errorf("expected no params, got %d args %d opts", len(spec.Arguments), len(spec.Options))
	}
	if len(spec.InjectValues) != 0 {
		t.Errorf("expected no inject values, got %v", spec.InjectValues)
	}
}

func TestCompileCommandFull(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"name":       "grep-count",
		"help":       "Count the lines of input that match a pattern.",
		"short_help": "Count matching lines",
		"section":    "text",
		"arguments": []any{
			map[string]any{"name": "pattern"},
			map[string]any{"name": "files", "nargs": -1, "required": false},
		},
		"options": []any{
			map[string]any{"name": "--ignore-case", "is_flag": true, "help": "fold case"},
			map[string]any{"name": "--max", "type": "int", "default": 10},
		},
		"stage": []any{
			map[string]any{
				"command": "filter",
				"remap_params": []any{
					map[string]any{"new": "pattern", "old": "code"},
				},
			},
			map[string]any{"command": "eval", "params": map[string]any{"code": "len(lines)"}},
		},
		"inject_values": []any{"pattern"},
		"test": []any{
			map[string]any{
				"invocation": []any{"grep-count", "foo"},
				"input":      "foo\nbar\nfoo\n",
				"output":     "2\n",
			},
		},
	}

	spec, err := CompileCommand(raw)
	if err != nil {
		t.Fatalf("CompileCommand() returned error: %v", err)
	}

	if spec.ShortHelp != "Count matching lines" {
		t.Errorf("ShortHelp = %q", spec.ShortHelp)
	}
	if spec.Section != "text" {
		t.Errorf("Section = %q", spec.Section)
	}

	if len(spec.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(spec.Arguments))
	}
	if !spec.Arguments[0].Required {
		t.Error("arguments default to required")
	}
	if spec.Arguments[0].Type != ParamTypeString {
		t.Errorf("argument type defaults to str, got %v", spec.Arguments[0].Type)
	}
	if !spec.Arguments[1].IsVariadic() {
		t.Error("nargs -1 should mark the argument variadic")
	}
	if spec.Arguments[1].Required {
		t.Error("explicit required false should stick")
	}

	if len(spec.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(spec.Options))
	}
	ignoreCase := spec.Options[0]
	if !ignoreCase.IsFlag {
		t.Error("is_flag should decode")
	}
	if ignoreCase.CanonicalName() != "ignore_case" {
		t.Errorf("CanonicalName() = %q", ignoreCase.CanonicalName())
	}
	if ignoreCase.HasDefault {
		t.Error("undeclared default should stay absent")
	}
	max := spec.Options[1]
	if max.Type != ParamTypeInt {
		t.Errorf("option type = %v", max.Type)
	}
	if !max.HasDefault {
		t.Fatal("declared default should be present")
	}

	if got := spec.Stages[0].RenameOf("code"); got != "pattern" {
		t.Errorf("RenameOf(code) = %q", got)
	}
	if got := spec.Stages[0].RenameOf("other"); got != "other" {
		t.Errorf("RenameOf(other) = %q, want passthrough", got)
	}

	if len(spec.TestSpecs) != 1 {
		t.Fatalf("expected 1 test spec, got %d", len(spec.TestSpecs))
	}
	ts := spec.TestSpecs[0]
	if len(ts.Invocation) != 2 || ts.Invocation[1] != "foo" {
		t.Errorf("Invocation = %v", ts.Invocation)
	}
	if ts.Input != "foo\nbar\nfoo\n" || ts.Output != "2\n" {
		t.Errorf("Input/Output = %q/%q", ts.Input, ts.Output)
	}

	want := []string{"pattern", "files", "ignore_case", "max"}
	got := spec.ParamNames()
	if len(got) != len(want) {
		t.Fatalf("ParamNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParamNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompileCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(raw map[string]any)
		wantPart string
	}{
		{
			name:     "missing name",
			mutate:   func(raw map[string]any) { delete(raw, "name") },
			wantPart: "name: missing required field",
		},
		{
			name:     "missing stage",
			mutate:   func(raw map[string]any) { delete(raw, "stage") },
			wantPart: "stages: missing required field",
		},
		{
			name:     "empty stage list",
			mutate:   func(raw map[string]any) { raw["stage"] = []any{} },
			wantPart: "must contain at least one stage",
		},
		{
			name:     "unknown command field",
			mutate:   func(raw map[string]any) { raw["alias"] = "j2c" },
			wantPart: "alias: unknown field",
		},
		{
			name: "unknown option type",
			mutate: func(raw map[string]any) {
				raw["options"] = []any{map[string]any{"name": "--max", "type": "decimal"}}
			},
			wantPart: "unknown parameter type",
		},
		{
			name: "zero nargs",
			mutate: func(raw map[string]any) {
				raw["options"] = []any{map[string]any{"name": "--max", "nargs": 0}}
			},
			wantPart: "positive count",
		},
		{
			name: "stage without command",
			mutate: func(raw map[string]any) {
				raw["stage"] = []any{map[string]any{"params": map[string]any{"code": "1"}}}
			},
			wantPart: "command: missing required field",
		},
		{
			name: "duplicate remap target",
			mutate: func(raw map[string]any) {
				raw["stage"] = []any{map[string]any{
					"command": "map",
					"remap_params": []any{
						map[string]any{"new": "x", "old": "code"},
						map[string]any{"new": "x", "old": "other"},
					},
				}}
			},
			wantPart: "duplicate remap target",
		},
		{
			name: "parameter remapped twice",
			mutate: func(raw map[string]any) {
				raw["stage"] = []any{map[string]any{
					"command": "map",
					"remap_params": []any{
						map[string]any{"new": "x", "old": "code"},
						map[string]any{"new": "y", "old": "code"},
					},
				}}
			},
			wantPart: "remapped twice",
		},
		{
			name: "argument and option collide canonically",
			mutate: func(raw map[string]any) {
				raw["arguments"] = []any{map[string]any{"name": "exit-code"}}
				raw["options"] = []any{map[string]any{"name": "--exit-code"}}
			},
			wantPart: "collides with",
		},
		{
			name: "test spec missing output",
			mutate: func(raw map[string]any) {
				raw["test"] = []any{map[string]any{"invocation": []any{"x"}, "input": ""}}
			},
			wantPart: "output: missing required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := rawCommand()
			tt.mutate(raw)

			_, err := CompileCommand(raw)
			if err == nil {
				t.Fatal("expected compile error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantPart)
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if !verrs.HasErrors() {
				t.Error("expected error-level issues")
			}
		})
	}
}

func TestCompileCommandCollectsAllErrors(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"alias": "j2c", // unknown field
		"options": []any{
			map[string]any{"name": "--max", "type": "decimal"}, // bad type
		},
		"stage": []any{}, // empty
	}

	_, err := CompileCommand(raw)
	if err == nil {
		t.Fatal("expected compile error")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	// Missing name, unknown field, bad option type, empty stage list.
	if len(verrs) < 4 {
		t.Errorf("expected at least 4 collected issues, got %d: %v", len(verrs), verrs)
	}
}

func TestCompileCommandNamePolicy(t *testing.T) {
	t.Parallel()

	raw := rawCommand()
	raw["arguments"] = []any{map[string]any{"name": "--pattern"}}
	raw["options"] = []any{map[string]any{"name": "verbose"}}

	// Default policy accepts both shapes.
	if _, err := CompileCommand(raw); err != nil {
		t.Fatalf("default policy rejected command: %v", err)
	}

	// Strict policy rejects both.
	_, err := CompileCommand(raw, WithNamePolicy(StrictNamePolicy()))
	if err == nil {
		t.Fatal("strict policy should reject dashed argument and undashed option")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 policy violations, got %d: %v", len(verrs), verrs)
	}
}

func TestCompileCommandIsDeterministic(t *testing.T) {
	t.Parallel()

	raw := rawCommand()
	raw["options"] = []any{
		map[string]any{"name": "--max", "type": "int", "default": 10},
	}
	raw["inject_values"] = []any{"max"}

	first, err := CompileCommand(raw)
	if err != nil {
		t.Fatalf("first compile failed: %v", err)
	}
	second, err := CompileCommand(raw)
	if err != nil {
		t.Fatalf("second compile failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated compiles differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCommandPathUsesNameWhenAvailable(t *testing.T) {
	t.Parallel()

	raw := rawCommand()
	raw["alias"] = "x"
	_, err := CompileCommand(raw)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "command 'jsonl2csv'") {
		t.Errorf("error should name the command, got: %v", err)
	}
}
