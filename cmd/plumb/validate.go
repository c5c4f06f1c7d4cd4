// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"plumb-cli/internal/config"
	"plumb-cli/internal/discovery"
	"plumb-cli/internal/registry"
	"plumb-cli/pkg/plumbfile"
)

// validateCmd checks plumbfiles without running anything.
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate plumbfiles",
	Long: `Validate plumbfiles in the workspace or at a given path.

Without arguments, validates every discovered plumbfile: schema and
structural validation first, then stage resolution of every command
against the full command registry.

With a path argument, validates that single plumbfile. Its commands
are resolved against the builtin commands plus the file's own commands.

Examples:
  plumb validate                  Validate the workspace
  plumb validate ./plumbfile.cue  Validate a single plumbfile`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runWorkspaceValidation(cmd)
		}
		return runFileValidation(cmd, args[0])
	},
}

// runWorkspaceValidation validates every discovered plumbfile and renders
// all issues in a single pass so users see everything at once instead of
// fixing and rerunning iteratively.
func runWorkspaceValidation(cmd *cobra.Command) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	fmt.Fprintln(stdout, TitleStyle.Render("Workspace Validation"))
	fmt.Fprintln(stdout)

	cfg := config.Get()
	disc := discovery.New(cfg)

	files, err := disc.LoadAll()
	if err != nil {
		fmt.Fprintf(stderr, "%s Discovery failed: %s\n", ErrorStyle.Render("✗"), err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	if len(files) == 0 {
		fmt.Fprintf(stderr, "%s No plumbfile found in the current directory or search paths\n", WarningStyle.Render("!"))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintf(stdout, "%s %d plumbfile(s) discovered\n", SuccessStyle.Render("✓"), len(files))

	issueCount := 0
	issueCount += reportParseErrors(cmd, files)

	// Stage resolution runs against the full registry: builtins plus
	// every command from every parseable file, matching what `plumb cmd`
	// registers at runtime.
	reg := registry.NewWithBuiltins()
	var parsed []*discovery.DiscoveredFile
	for _, file := range files {
		if file.Error != nil {
			continue
		}
		parsed = append(parsed, file)
		for _, spec := range file.Plumbfile.Commands {
			if regErr := reg.RegisterSpec(spec); regErr != nil {
				var dup *registry.DuplicateCommandError
				if errors.As(regErr, &dup) {
					// Shadowed commands are expected across files.
					continue
				}
				fmt.Fprintf(stderr, "  %s %s: %s\n", ErrorStyle.Render("✗"), CmdStyle.Render(spec.Name), regErr)
				issueCount++
			}
		}
	}

	for _, file := range parsed {
		issueCount += reportStageErrors(cmd, reg, file.Path, file.Plumbfile)
	}

	if issueCount > 0 {
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s Validation failed with %d issue(s)\n", ErrorStyle.Render("✗"), issueCount)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Workspace is valid\n", SuccessStyle.Render("✓"))
	return nil
}

// runFileValidation validates a single plumbfile and renders styled output.
func runFileValidation(cmd *cobra.Command, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Plumbfile Validation"))
	fmt.Fprintf(stdout, "%s Path: %s\n", SubtitleStyle.Render("→"), absPath)
	fmt.Fprintln(stdout)

	var opts []plumbfile.CompileOption
	if config.Get().StrictNames {
		opts = append(opts, plumbfile.WithNamePolicy(plumbfile.StrictNamePolicy()))
	}

	pf, err := plumbfile.Parse(path, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "%s Schema validation failed\n", ErrorStyle.Render("✗"))
		fmt.Fprintln(stderr)
		reportValidationErrors(cmd, err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintf(stdout, "%s Schema validation passed\n", SuccessStyle.Render("✓"))
	fmt.Fprintf(stdout, "%s Structural validation passed\n", SuccessStyle.Render("✓"))

	// Stage resolution against builtins plus the file's own commands.
	reg := registry.NewWithBuiltins()
	issueCount := 0
	for _, spec := range pf.Commands {
		if regErr := reg.RegisterSpec(spec); regErr != nil {
			fmt.Fprintf(stderr, "  %s %s: %s\n", ErrorStyle.Render("✗"), CmdStyle.Render(spec.Name), regErr)
			issueCount++
		}
	}
	issueCount += reportStageErrors(cmd, reg, absPath, pf)

	if issueCount > 0 {
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s Validation failed with %d issue(s)\n", ErrorStyle.Render("✗"), issueCount)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}

	fmt.Fprintf(stdout, "%s Stage resolution passed\n", SuccessStyle.Render("✓"))
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Plumbfile is valid (%d command(s))\n", SuccessStyle.Render("✓"), len(pf.Commands))
	return nil
}

// reportParseErrors prints one entry per unparseable file and returns
// the number of files that failed.
func reportParseErrors(cmd *cobra.Command, files []*discovery.DiscoveredFile) int {
	stderr := cmd.ErrOrStderr()
	count := 0
	for _, file := range files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("✗"), file.Path)
		reportValidationErrors(cmd, file.Error)
		count++
	}
	return count
}

// reportStageErrors compiles every command's pipeline and prints the
// failures, returning how many commands did not resolve.
func reportStageErrors(cmd *cobra.Command, reg *registry.Registry, path string, pf *plumbfile.Plumbfile) int {
	stderr := cmd.ErrOrStderr()
	count := 0
	for _, spec := range pf.Commands {
		if _, err := reg.CompilePipeline(spec); err != nil {
			fmt.Fprintf(stderr, "  %s %s (%s): %s\n", ErrorStyle.Render("✗"), CmdStyle.Render(spec.Name), VerboseStyle.Render(path), err)
			count++
		}
	}
	return count
}

// reportValidationErrors unpacks a ValidationErrors collection into one
// line per finding, falling back to the raw error text.
func reportValidationErrors(cmd *cobra.Command, err error) {
	stderr := cmd.ErrOrStderr()

	var verrs plumbfile.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			fmt.Fprintf(stderr, "  %s %s\n", ErrorStyle.Render("-"), ve.Error())
		}
		return
	}
	fmt.Fprintf(stderr, "  %s\n", err)
}
