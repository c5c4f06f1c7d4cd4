// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"plumb-cli/pkg/plumbfile"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a new plumbfile
	initCmd = &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a new plumbfile in the current directory",
		Long: `Create a new plumbfile in the current directory with example commands.

This command generates a starter plumbfile with sample pipeline commands
to help you get started quickly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing plumbfile")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal, full)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := plumbfile.PlumbfileName + ".cue"
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content, err := generatePlumbfile(initTemplate)
	if err != nil {
		return err
	}

	// Write file
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the plumbfile to define your command pipelines")
	fmt.Println("  2. Run 'plumb cmd' to see available commands")
	fmt.Println("  3. Run 'plumb cmd <command>' to inspect a resolved pipeline")

	return nil
}

const minimalTemplate = `version: "1.0"

cmds: [
	{
		name: "hello"
		short_help: "Print a greeting"
		stage: [
			{command: "eval", params: {code: "\"hello from plumb\""}},
		]
	},
]
`

const defaultTemplate = `version: "1.0"
description: "Project commands"

cmds: [
	{
		name: "grep-count"
		short_help: "Count lines matching a pattern"
		arguments: [
			{name: "pattern"},
		]
		options: [
			{name: "--ignore-case", is_flag: true, help: "case-insensitive match"},
		]
		stage: [
			{
				command: "filter"
				remap_params: [{new: "pattern", old: "code"}]
			},
			{command: "eval", params: {code: "len(lines)"}},
		]
	},
	{
		name: "shout"
		short_help: "Uppercase every input line"
		stage: [
			{command: "map", params: {code: "line.upper()"}},
		]
	},
]
`

const fullTemplate = `version: "1.0"
description: "Project commands"

cmds: [
	{
		name: "grep-count"
		help: "Count the lines of input that match a pattern."
		short_help: "Count lines matching a pattern"
		section: "text"
		arguments: [
			{name: "pattern"},
		]
		options: [
			{name: "--ignore-case", is_flag: true, help: "case-insensitive match"},
			{name: "--max", type: "int", default: 0, help: "stop after this many matches"},
		]
		stage: [
			{
				command: "filter"
				remap_params: [{new: "pattern", old: "code"}]
			},
			{command: "eval", params: {code: "len(lines)"}},
		]
	},
	{
		name: "sum-column"
		short_help: "Sum a numeric column"
		section: "numbers"
		arguments: [
			{name: "column", type: "int"},
		]
		inject_values: ["column"]
		stage: [
			{command: "map", params: {code: "float(fields[column])"}},
			{command: "reduce", params: {function: "acc + x", initial: "0"}},
		]
	},
	{
		name: "dedupe"
		short_help: "Drop repeated lines"
		section: "text"
		stage: [
			{command: "filter", params: {code: "line not in seen"}},
		]
	},
]
`

// generatePlumbfile returns starter content for the named template,
// parsed once to guarantee the emitted file compiles.
func generatePlumbfile(template string) (string, error) {
	var content string
	switch template {
	case "minimal":
		content = minimalTemplate
	case "full":
		content = fullTemplate
	case "default":
		content = defaultTemplate
	default:
		return "", fmt.Errorf("unknown template '%s': expected default, minimal, or full", template)
	}

	if _, err := plumbfile.ParseBytes([]byte(content), plumbfile.PlumbfileName+".cue"); err != nil {
		return "", fmt.Errorf("internal error: template '%s' does not compile: %w", template, err)
	}
	return content, nil
}
