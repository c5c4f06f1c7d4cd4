// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"plumb-cli/internal/config"
	"plumb-cli/internal/issue"
)

// configCmd is the parent for configuration management subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage plumb configuration",
	Long: `Manage plumb configuration.

Configuration is stored in:
  - Linux: ~/.config/plumb/config.cue
  - macOS: ~/Library/Application Support/plumb/config.cue
  - Windows: %APPDATA%\plumb\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil {
		cfgPath := filepath.Join(cfgDir, "config.cue")
		if fileExistsCheck(cfgPath) {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("strict_names"), valueStyle.Render(fmt.Sprintf("%v", cfg.StrictNames)))
	fmt.Printf("%s: %s\n", keyStyle.Render("log_level"), valueStyle.Render(string(cfg.LogLevel)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("search_paths"))
	if len(cfg.SearchPaths) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, sp := range cfg.SearchPaths {
			fmt.Printf("  - %s\n", valueStyle.Render(string(sp)))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), filepath.Join(cfgDir, "config.cue"))

	// Also create the commands directory
	cmdsDir, err := config.CommandsDir()
	if err == nil {
		if mkdirErr := config.EnsureCommandsDir(); mkdirErr != nil {
			log.Warn("failed to create commands directory", "path", cmdsDir, "err", mkdirErr)
		} else {
			fmt.Printf("%s Created commands directory at %s\n", SuccessStyle.Render("✓"), cmdsDir)
		}
	} else {
		log.Warn("failed to determine commands directory", "err", err)
	}

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, "config.cue"))

	cmdsDir, err := config.CommandsDir()
	if err == nil {
		fmt.Printf("Commands directory: %s\n", cmdsDir)
	}

	return nil
}

func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "strict_names":
		cfg.StrictNames = value == "true" || value == "1"

	case "log_level":
		lvl := config.LogLevel(value)
		if ok, errs := lvl.IsValid(); !ok {
			return errs[0]
		}
		cfg.LogLevel = lvl

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, errs := scheme.IsValid(); !ok {
			return errs[0]
		}
		cfg.UI.ColorScheme = scheme

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: strict_names, log_level, ui.color_scheme, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
