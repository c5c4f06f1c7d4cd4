// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"testing"

	"plumb-cli/pkg/plumbfile"
)

func TestResolveStageRemapAndOverride(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	stage := &plumbfile.CommandStage{
		Command: "paint",
		RemapParams: []plumbfile.RemapParam{
			{New: "hue", Old: "color"},
		},
		Params: map[string]string{
			"hue":   "red",
			"coats": "3",
		},
	}

	resolved, err := r.ResolveStage(stage)
	if err != nil {
		t.Fatalf("failed to resolve stage: %v", err)
	}

	hue := resolved.Param("hue")
	if hue == nil {
		t.Fatal("expected renamed param 'hue'")
	}
	if hue.BaseName != "color" {
		t.Errorf("expected base name 'color', got %q", hue.BaseName)
	}
	if !hue.FromOverride || hue.Value != "red" {
		t.Errorf("expected override value 'red', got %v (override=%v)", hue.Value, hue.FromOverride)
	}

	// The pre-remap name must no longer be addressable.
	if resolved.Param("color") != nil {
		t.Error("expected pre-remap name 'color' to be gone after rename")
	}

	coats := resolved.Param("coats")
	if coats == nil {
		t.Fatal("expected param 'coats'")
	}
	if coats.Value != "3" || !coats.FromOverride {
		t.Errorf("expected override to replace default, got %v (override=%v)", coats.Value, coats.FromOverride)
	}
}

func TestResolveStageKeepsDefaults(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	resolved, err := r.ResolveStage(&plumbfile.CommandStage{Command: "paint"})
	if err != nil {
		t.Fatalf("failed to resolve stage: %v", err)
	}

	coats := resolved.Param("coats")
	if coats == nil {
		t.Fatal("expected param 'coats'")
	}
	if !coats.HasValue || coats.Value != "2" || coats.FromOverride {
		t.Errorf("expected untouched default '2', got %v (has=%v override=%v)",
			coats.Value, coats.HasValue, coats.FromOverride)
	}

	color := resolved.Param("color")
	if color == nil {
		t.Fatal("expected param 'color'")
	}
	if color.HasValue {
		t.Errorf("expected required param without default to stay unfilled, got %v", color.Value)
	}
}

func TestResolveStageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		stage     *plumbfile.CommandStage
		wantErr   error
		wantParam string
	}{
		{
			name:    "unknown base command",
			stage:   &plumbfile.CommandStage{Command: "varnish"},
			wantErr: ErrUnknownCommand,
		},
		{
			name: "remap of a parameter the base command lacks",
			stage: &plumbfile.CommandStage{
				Command:     "paint",
				RemapParams: []plumbfile.RemapParam{{New: "sheen", Old: "gloss"}},
			},
			wantErr:   ErrUnknownParameter,
			wantParam: "gloss",
		},
		{
			name: "override keyed by an unknown stage-local name",
			stage: &plumbfile.CommandStage{
				Command: "paint",
				Params:  map[string]string{"z": "1"},
			},
			wantErr:   ErrUnknownParameter,
			wantParam: "z",
		},
		{
			name: "override keyed by the pre-remap name",
			stage: &plumbfile.CommandStage{
				Command:     "paint",
				RemapParams: []plumbfile.RemapParam{{New: "hue", Old: "color"}},
				Params:      map[string]string{"color": "red"},
			},
			wantErr:   ErrUnknownParameter,
			wantParam: "color",
		},
		{
			name: "remap landing on a taken stage-local name",
			stage: &plumbfile.CommandStage{
				Command:     "paint",
				RemapParams: []plumbfile.RemapParam{{New: "coats", Old: "color"}},
			},
			wantErr:   ErrAmbiguousParameter,
			wantParam: "coats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRegistry(t)
			_, err := r.ResolveStage(tt.stage)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantParam == "" {
				return
			}

			var paramErr *UnknownParameterError
			if errors.As(err, &paramErr) {
				if paramErr.Name != tt.wantParam {
					t.Errorf("expected offending param %q, got %q", tt.wantParam, paramErr.Name)
				}
				return
			}
			var ambErr *AmbiguousParameterError
			if errors.As(err, &ambErr) {
				if ambErr.Name != tt.wantParam {
					t.Errorf("expected offending param %q, got %q", tt.wantParam, ambErr.Name)
				}
				return
			}
			t.Fatalf("expected a typed parameter error, got %T", err)
		})
	}
}

func TestResolveStagesOrder(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	if err := r.Register(&Command{Name: "dry"}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	spec := &plumbfile.CommandSpec{
		Name: "refinish",
		Stages: []*plumbfile.CommandStage{
			{Command: "paint", Params: map[string]string{"color": "oak"}},
			{Command: "dry"},
		},
	}

	stages, err := r.ResolveStages(spec)
	if err != nil {
		t.Fatalf("failed to resolve stages: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 resolved stages, got %d", len(stages))
	}
	if stages[0].Command.Name != "paint" || stages[1].Command.Name != "dry" {
		t.Errorf("expected declaration order preserved, got %q then %q",
			stages[0].Command.Name, stages[1].Command.Name)
	}
}
