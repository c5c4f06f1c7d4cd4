// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		PlumbfileNotFoundId,
		PlumbfileParseErrorId,
		CommandNotFoundId,
		UnknownBaseCommandId,
		UnknownParameterId,
		DuplicateCommandId,
		MissingInjectValueId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if PlumbfileNotFoundId != 1 {
		t.Errorf("PlumbfileNotFoundId = %d, want 1", PlumbfileNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(PlumbfileNotFoundId)
	if issue == nil {
		t.Fatal("Get(PlumbfileNotFoundId) returned nil")
	}

	if issue.Id() != PlumbfileNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), PlumbfileNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(PlumbfileNotFoundId)
	if issue == nil {
		t.Fatal("Get(PlumbfileNotFoundId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if msg == "" {
		t.Error("MarkdownMsg() returned empty string")
	}

	// Verify it contains expected content
	if !strings.Contains(string(msg), "No plumbfile found") {
		t.Error("MarkdownMsg() should contain 'No plumbfile found'")
	}
}

func TestIssue_Render(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		// Simple mock that just returns the input
		return in, nil
	}

	issue := Get(PlumbfileParseErrorId)
	if issue == nil {
		t.Fatal("Get(PlumbfileParseErrorId) returned nil")
	}

	rendered, err := issue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if rendered == "" {
		t.Error("Render() returned empty string")
	}

	// The rendered output should contain the content
	if !strings.Contains(rendered, "plumbfile") {
		t.Error("Render() output should contain 'plumbfile'")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{PlumbfileNotFoundId, false, "No plumbfile found"},
		{PlumbfileParseErrorId, false, "Failed to parse"},
		{CommandNotFoundId, false, "Command not found"},
		{UnknownBaseCommandId, false, "Unknown base command"},
		{UnknownParameterId, false, "Unknown parameter"},
		{DuplicateCommandId, false, "Duplicate command name"},
		{MissingInjectValueId, false, "Missing inject value"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}

			if tt.contains != "" && !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) == 0 {
		t.Fatal("Values() returned empty slice")
	}

	expectedCount := 8 // Based on the number of predefined issues

	if len(issues) != expectedCount {
		t.Errorf("Values() returned %d issues, want %d", len(issues), expectedCount)
	}

	// Verify all issues have valid IDs
	for _, issue := range issues {
		if issue.Id() == 0 {
			t.Error("found issue with ID 0")
		}
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	// Create a test issue with links to verify the rendering logic
	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	// The rendered output should include the "See also" section
	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	// Create a test issue without links
	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test Issue\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	// Should render without the "See also" section
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesHaveContent(t *testing.T) {
	issues := Values()

	for _, issue := range issues {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	issues := Values()

	for _, issue := range issues {
		rendered, err := issue.Render("")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
