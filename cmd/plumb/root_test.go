// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"plumb-cli/internal/config"
	"plumb-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("dev version string = %q", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	got := getVersionString()
	for _, part := range []string{"1.2.3", "abc123", "2026-01-01"} {
		if !strings.Contains(got, part) {
			t.Errorf("version string %q missing %q", got, part)
		}
	}
}

func TestApplyLogLevel(t *testing.T) {
	origLevel := log.GetLevel()
	origVerbose := verbose
	t.Cleanup(func() {
		log.SetLevel(origLevel)
		verbose = origVerbose
	})

	tests := []struct {
		name    string
		verbose bool
		cfg     *config.Config
		want    log.Level
	}{
		{"verbose forces debug", true, &config.Config{LogLevel: config.LogLevelError}, log.DebugLevel},
		{"debug level", false, &config.Config{LogLevel: config.LogLevelDebug}, log.DebugLevel},
		{"warn level", false, &config.Config{LogLevel: config.LogLevelWarn}, log.WarnLevel},
		{"error level", false, &config.Config{LogLevel: config.LogLevelError}, log.ErrorLevel},
		{"info level", false, &config.Config{LogLevel: config.LogLevelInfo}, log.InfoLevel},
		{"unset level falls back to info", false, &config.Config{}, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbose = tt.verbose
			applyLogLevel(tt.cfg)
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("log level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("something broke")
	if got := formatErrorForDisplay(plain, false); got != "something broke" {
		t.Errorf("plain error = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load plumbfile").
		WithSuggestion("Check the file syntax").
		Wrap(errors.New("parse failed")).
		BuildError()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "load plumbfile") {
		t.Errorf("formatted error %q missing operation", got)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	e := &ExitError{Code: 3}
	if e.Error() != "exit status 3" {
		t.Errorf("Error() = %q", e.Error())
	}
	if e.Unwrap() != nil {
		t.Error("bare ExitError should not unwrap")
	}

	inner := fmt.Errorf("boom")
	wrapped := &ExitError{Code: 1, Err: inner}
	if wrapped.Error() != "boom" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, inner) {
		t.Error("expected wrapped error in chain")
	}
}
