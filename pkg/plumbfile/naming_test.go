// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalParamName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"long option", "--exit-code", "exit_code"},
		{"short option", "-v", "v"},
		{"plain argument", "pattern", "pattern"},
		{"argument with dashes", "max-depth", "max_depth"},
		{"already canonical", "exit_code", "exit_code"},
		{"only dashes", "--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CanonicalParamName(tt.input); got != tt.want {
				t.Errorf("CanonicalParamName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptionNameIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value OptionName
		valid bool
	}{
		{"dashed name", "--verbose", true},
		{"undashed name", "verbose", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", OptionName(strings.Repeat("x", MaxNameLength+1)), false},
		{"at limit", OptionName(strings.Repeat("x", MaxNameLength)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.value.IsValid()
			if ok != tt.valid {
				t.Fatalf("IsValid() = %v, want %v (errs=%v)", ok, tt.valid, errs)
			}
			if !ok && !errors.Is(errs[0], ErrInvalidOptionName) {
				t.Errorf("expected ErrInvalidOptionName, got %v", errs[0])
			}
		})
	}
}

func TestArgumentNameIsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := ArgumentName("pattern").IsValid(); !ok {
		t.Error("expected plain argument name to be valid")
	}

	ok, errs := ArgumentName("").IsValid()
	if ok {
		t.Fatal("expected empty argument name to be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidArgumentName) {
		t.Errorf("expected ErrInvalidArgumentName, got %v", errs[0])
	}
}

func TestNamePolicy(t *testing.T) {
	t.Parallel()

	t.Run("zero policy enforces nothing", func(t *testing.T) {
		t.Parallel()
		var p NamePolicy
		if errs := p.CheckOption("verbose"); errs != nil {
			t.Errorf("zero policy rejected undashed option: %v", errs)
		}
		if errs := p.CheckArgument("-weird"); errs != nil {
			t.Errorf("zero policy rejected dashed argument: %v", errs)
		}
	})

	t.Run("strict policy requires option dash", func(t *testing.T) {
		t.Parallel()
		p := StrictNamePolicy()
		if errs := p.CheckOption("--verbose"); errs != nil {
			t.Errorf("strict policy rejected dashed option: %v", errs)
		}
		if errs := p.CheckOption("verbose"); len(errs) == 0 {
			t.Error("strict policy accepted undashed option")
		}
	})

	t.Run("strict policy forbids argument dash", func(t *testing.T) {
		t.Parallel()
		p := StrictNamePolicy()
		if errs := p.CheckArgument("pattern"); errs != nil {
			t.Errorf("strict policy rejected plain argument: %v", errs)
		}
		if errs := p.CheckArgument("--pattern"); len(errs) == 0 {
			t.Error("strict policy accepted dashed argument")
		}
	})

	t.Run("baseline rules still apply under any policy", func(t *testing.T) {
		t.Parallel()
		p := StrictNamePolicy()
		if errs := p.CheckOption(""); len(errs) == 0 {
			t.Error("strict policy accepted empty option name")
		}
		var zero NamePolicy
		if errs := zero.CheckOption(""); len(errs) == 0 {
			t.Error("zero policy accepted empty option name")
		}
	})
}

func TestDecls(t *testing.T) {
	t.Parallel()

	if got := OptionName("--flag").Decls(); len(got) != 1 || got[0] != "--flag" {
		t.Errorf("OptionName.Decls() = %v", got)
	}
	if got := ArgumentName("arg").Decls(); len(got) != 1 || got[0] != "arg" {
		t.Errorf("ArgumentName.Decls() = %v", got)
	}
}
