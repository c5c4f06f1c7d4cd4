// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

// Simple test schema for parsing tests
const testSchema = `
#TestConfig: {
	name:        string
	count:       int
	enabled:     bool
	description?: string
}
`

// TestConfig is a simple struct for testing generic parsing
type TestConfig struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Run("valid config parses successfully", func(t *testing.T) {
		data := []byte(`
name: "test"
count: 42
enabled: true
description: "A test config"
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Name != "test" {
			t.Errorf("expected name='test', got %q", result.Name)
		}
		if result.Count != 42 {
			t.Errorf("expected count=42, got %d", result.Count)
		}
		if !result.Enabled {
			t.Error("expected enabled=true")
		}
		if result.Description != "A test config" {
			t.Errorf("expected description='A test config', got %q", result.Description)
		}
	})

	t.Run("optional field can be omitted", func(t *testing.T) {
		data := []byte(`
name: "minimal"
count: 1
enabled: false
`)
		result, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Name != "minimal" {
			t.Errorf("expected name='minimal', got %q", result.Name)
		}
		if result.Description != "" {
			t.Errorf("expected empty description, got %q", result.Description)
		}
	})

	t.Run("invalid type returns error", func(t *testing.T) {
		data := []byte(`
name: "test"
count: "not a number"  // Should be int
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil {
			t.Error("expected error for invalid type")
		}
	})

	t.Run("missing required field returns error", func(t *testing.T) {
		data := []byte(`
name: "test"
// count is missing
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err == nil {
			t.Error("expected error for missing required field")
		}
	})

	t.Run("WithFilename sets filename in errors", func(t *testing.T) {
		data := []byte(`
name: "test"
count: "invalid"
enabled: true
`)
		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithFilename("my-plumbfile.cue"),
		)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "my-plumbfile.cue") {
			t.Errorf("error should contain filename, got: %v", err)
		}
	})
}

// Tests parsing against a command-shaped schema with nested lists.
func TestParseCommandShapedType(t *testing.T) {
	commandSchema := `
#Command: {
	name:        string
	short_help?: string
	stage?: [...{
		command: string
		params?: [string]: string
	}]
}
`

	type Stage struct {
		Command string            `json:"command"`
		Params  map[string]string `json:"params,omitempty"`
	}
	type Command struct {
		Name      string  `json:"name"`
		ShortHelp string  `json:"short_help,omitempty"`
		Stages    []Stage `json:"stage,omitempty"`
	}

	t.Run("valid command parses successfully", func(t *testing.T) {
		data := []byte(`
name: "grep-count"
short_help: "Count matching lines"
stage: [
	{command: "filter", params: {code: "pattern in line"}},
	{command: "eval", params: {code: "len(lines)"}},
]
`)
		result, err := ParseAndDecode[Command]([]byte(commandSchema), data, "#Command")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Name != "grep-count" {
			t.Errorf("expected name='grep-count', got %q", result.Name)
		}
		if len(result.Stages) != 2 {
			t.Errorf("expected 2 stages, got %d", len(result.Stages))
		}
	})

	t.Run("minimal command parses successfully", func(t *testing.T) {
		data := []byte(`
name: "noop"
`)
		result, err := ParseAndDecode[Command]([]byte(commandSchema), data, "#Command")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.Name != "noop" {
			t.Errorf("expected name='noop', got %q", result.Name)
		}
	})
}

// Tests for schemas where every field is optional, like the app config.
func TestParseConfigType(t *testing.T) {
	configSchema := `
#Config: {
	log_level?: "debug" | "info" | "warn" | "error"
	search_paths?: [...string]
	strict_names?: bool
}
`

	type Config struct {
		LogLevel    string   `json:"log_level,omitempty"`
		SearchPaths []string `json:"search_paths,omitempty"`
		StrictNames bool     `json:"strict_names,omitempty"`
	}

	t.Run("full config parses successfully", func(t *testing.T) {
		data := []byte(`
log_level: "debug"
search_paths: ["./", "~/.plumb/cmds"]
strict_names: true
`)
		result, err := ParseAndDecode[Config]([]byte(configSchema), data, "#Config")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.LogLevel != "debug" {
			t.Errorf("expected log_level='debug', got %q", result.LogLevel)
		}
		if len(result.SearchPaths) != 2 {
			t.Errorf("expected 2 search_paths, got %d", len(result.SearchPaths))
		}
	})

	t.Run("empty config parses with WithConcrete(false)", func(t *testing.T) {
		data := []byte(`{}`)
		result, err := ParseAndDecode[Config](
			[]byte(configSchema),
			data,
			"#Config",
			WithConcrete(false),
		)
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}

		if result.LogLevel != "" {
			t.Errorf("expected empty log_level, got %q", result.LogLevel)
		}
	})

	t.Run("invalid enum value returns error", func(t *testing.T) {
		data := []byte(`
log_level: "loud"  // Invalid: not a known level
`)
		_, err := ParseAndDecode[Config]([]byte(configSchema), data, "#Config")
		if err == nil {
			t.Error("expected error for invalid enum value")
		}
	})
}

func TestFileSizeLimit(t *testing.T) {
	t.Run("file within limit parses successfully", func(t *testing.T) {
		data := []byte(`
name: "test"
count: 1
enabled: true
`)
		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithMaxFileSize(1024), // 1KB limit
		)
		if err != nil {
			t.Errorf("expected success, got error: %v", err)
		}
	})

	t.Run("file exceeding limit returns error", func(t *testing.T) {
		data := make([]byte, 200)
		for i := range data {
			data[i] = 'a'
		}

		_, err := ParseAndDecode[TestConfig](
			[]byte(testSchema),
			data,
			"#TestConfig",
			WithMaxFileSize(100), // 100 byte limit
		)
		if err == nil {
			t.Error("expected error for oversized file")
		}
		if !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("error should mention size limit, got: %v", err)
		}
	})

	t.Run("default limit is applied", func(t *testing.T) {
		data := []byte(`name: "test"
count: 1
enabled: true
`)
		_, err := ParseAndDecode[TestConfig]([]byte(testSchema), data, "#TestConfig")
		if err != nil {
			t.Errorf("expected success with default limit, got error: %v", err)
		}
	})
}

func TestCheckFileSize(t *testing.T) {
	if err := CheckFileSize([]byte("small"), 100, "a.cue"); err != nil {
		t.Errorf("expected nil for small input, got: %v", err)
	}

	err := CheckFileSize(make([]byte, 101), 100, "a.cue")
	if err == nil {
		t.Fatal("expected error for oversized input")
	}
	if !strings.Contains(err.Error(), "a.cue") {
		t.Errorf("error should carry the filename, got: %v", err)
	}
}
