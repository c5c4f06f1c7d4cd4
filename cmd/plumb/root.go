// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for plumb.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"plumb-cli/internal/config"
	"plumb-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "plumb",
		Short: "A declarative pipeline command compiler",
		Long: TitleStyle.Render("plumb") + SubtitleStyle.Render(" - A declarative pipeline command compiler") + `

plumb turns declarative command definitions into runnable CLI commands.
Commands are defined in 'plumbfile' files (CUE or TOML) as pipelines of
stages over a small set of base commands, with parameter renames,
literal overrides, and per-invocation value injection.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a plumbfile in your project directory
  2. Define commands as stage pipelines
  3. Run commands with: plumb cmd <command-name>

` + SubtitleStyle.Render("Examples:") + `
  plumb cmd                 List all available commands
  plumb cmd grep-count x    Run the 'grep-count' command
  plumb validate            Check every discovered plumbfile
  plumb init                Create a new plumbfile
  plumb config show         Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/plumb/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(cmdCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(validateCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	applyLogLevel(cfg)
}

// applyLogLevel configures the default logger from the config, with the
// --verbose flag forcing debug.
func applyLogLevel(cfg *config.Config) {
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	if cfg == nil {
		return
	}

	switch cfg.LogLevel {
	case config.LogLevelDebug:
		log.SetLevel(log.DebugLevel)
	case config.LogLevelWarn:
		log.SetLevel(log.WarnLevel)
	case config.LogLevelError:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
