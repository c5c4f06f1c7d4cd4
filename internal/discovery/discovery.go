// SPDX-License-Identifier: EPL-2.0

// Package discovery handles finding and loading plumbfiles from various locations.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"plumb-cli/internal/config"
	"plumb-cli/pkg/plumbfile"
)

// Source represents where a plumbfile was found
type Source int

const (
	// SourceCurrentDir indicates the file was found in the current directory
	SourceCurrentDir Source = iota
	// SourceUserDir indicates the file was found in ~/.plumb/cmds
	SourceUserDir
	// SourceConfigPath indicates the file was found in a configured search path
	SourceConfigPath
)

// String returns a human-readable source name
func (s Source) String() string {
	switch s {
	case SourceCurrentDir:
		return "current directory"
	case SourceUserDir:
		return "user commands (~/.plumb/cmds)"
	case SourceConfigPath:
		return "configured search path"
	default:
		return "unknown"
	}
}

// DiscoveredFile represents a found plumbfile with its source
type DiscoveredFile struct {
	// Path is the absolute path to the plumbfile
	Path string
	// Source indicates where the file was found
	Source Source
	// Plumbfile is the parsed content (may be nil if not yet parsed)
	Plumbfile *plumbfile.Plumbfile
	// Error contains any error that occurred during parsing
	Error error
}

// Discovery handles finding plumbfiles
type Discovery struct {
	cfg *config.Config
}

// New creates a new Discovery instance
func New(cfg *config.Config) *Discovery {
	return &Discovery{cfg: cfg}
}

// candidateNames lists the filenames probed in each directory, in
// preference order.
func candidateNames() []string {
	return []string{
		plumbfile.PlumbfileName + ".cue",
		plumbfile.PlumbfileName + ".toml",
		plumbfile.PlumbfileName,
	}
}

// DiscoverAll finds all plumbfiles from all sources in order of precedence
func (d *Discovery) DiscoverAll() ([]*DiscoveredFile, error) {
	var files []*DiscoveredFile

	// 1. Current directory (highest precedence)
	if cwdFile := d.discoverInDir(".", SourceCurrentDir); cwdFile != nil {
		files = append(files, cwdFile)
	}

	// 2. User commands directory (~/.plumb/cmds)
	userDir, err := config.CommandsDir()
	if err == nil {
		userFiles := d.discoverInDirRecursive(userDir, SourceUserDir)
		files = append(files, userFiles...)
	}

	// 3. Configured search paths
	for _, searchPath := range d.cfg.SearchPaths {
		pathFiles := d.discoverInDirRecursive(string(searchPath), SourceConfigPath)
		files = append(files, pathFiles...)
	}

	return files, nil
}

// discoverInDir looks for a plumbfile in a specific directory
func (d *Discovery) discoverInDir(dir string, source Source) *DiscoveredFile {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	for _, name := range candidateNames() {
		path := filepath.Join(absDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return &DiscoveredFile{Path: path, Source: source}
		}
	}

	return nil
}

// discoverInDirRecursive finds all plumbfiles in a directory tree
func (d *Discovery) discoverInDirRecursive(dir string, source Source) []*DiscoveredFile {
	var files []*DiscoveredFile

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return files
	}

	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return files
	}

	names := candidateNames()
	err = filepath.WalkDir(absDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if entry.IsDir() {
			return nil
		}

		for _, name := range names {
			if entry.Name() == name {
				files = append(files, &DiscoveredFile{Path: path, Source: source})
				break
			}
		}

		return nil
	})

	if err != nil {
		return files
	}

	return files
}

// compileOptions derives the parse options from the active config.
func (d *Discovery) compileOptions() []plumbfile.CompileOption {
	if d.cfg != nil && d.cfg.StrictNames {
		return []plumbfile.CompileOption{plumbfile.WithNamePolicy(plumbfile.StrictNamePolicy())}
	}
	return nil
}

// LoadAll parses all discovered files. Parse failures are captured on
// the file entry instead of aborting the whole discovery, so one broken
// plumbfile does not hide every other command.
func (d *Discovery) LoadAll() ([]*DiscoveredFile, error) {
	files, err := d.DiscoverAll()
	if err != nil {
		return nil, err
	}

	opts := d.compileOptions()
	for _, file := range files {
		pf, parseErr := plumbfile.Parse(file.Path, opts...)
		if parseErr != nil {
			file.Error = parseErr
		} else {
			file.Plumbfile = pf
		}
	}

	return files, nil
}

// LoadFirst loads the first valid plumbfile found (respecting precedence)
func (d *Discovery) LoadFirst() (*DiscoveredFile, error) {
	files, err := d.DiscoverAll()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no plumbfile found")
	}

	file := files[0]
	pf, parseErr := plumbfile.Parse(file.Path, d.compileOptions()...)
	if parseErr != nil {
		file.Error = parseErr
		return file, parseErr
	}

	file.Plumbfile = pf
	return file, nil
}

// CommandInfo contains information about a discovered command
type CommandInfo struct {
	// Name is the command name
	Name string
	// Description is the command's short help
	Description string
	// Source is where the command was found
	Source Source
	// FilePath is the path to the plumbfile containing this command
	FilePath string
	// Command is a reference to the compiled command
	Command *plumbfile.CommandSpec
	// Plumbfile is a reference to the parent plumbfile
	Plumbfile *plumbfile.Plumbfile
}

// DiscoverCommands finds all available commands from all plumbfiles.
// When two files define the same command name, the higher-precedence
// source wins and the shadowed definition is logged.
func (d *Discovery) DiscoverCommands() ([]*CommandInfo, error) {
	files, err := d.LoadAll()
	if err != nil {
		return nil, err
	}

	var commands []*CommandInfo
	seen := make(map[string]string) // name -> file path of first occurrence

	for _, file := range files {
		if file.Error != nil || file.Plumbfile == nil {
			if file.Error != nil {
				log.Warn("skipping unparseable plumbfile", "path", file.Path, "err", file.Error)
			}
			continue
		}

		for _, cmd := range file.Plumbfile.Commands {
			if firstPath, dup := seen[cmd.Name]; dup {
				log.Warn("command shadowed by a higher-precedence plumbfile",
					"command", cmd.Name, "kept", firstPath, "shadowed", file.Path)
				continue
			}
			seen[cmd.Name] = file.Path

			description := cmd.ShortHelp
			if description == "" {
				description = cmd.Help
			}

			commands = append(commands, &CommandInfo{
				Name:        cmd.Name,
				Description: description,
				Source:      file.Source,
				FilePath:    file.Path,
				Command:     cmd,
				Plumbfile:   file.Plumbfile,
			})
		}
	}

	// Sort commands by name for consistent ordering
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})

	return commands, nil
}

// GetCommand finds a specific command by name
func (d *Discovery) GetCommand(name string) (*CommandInfo, error) {
	commands, err := d.DiscoverCommands()
	if err != nil {
		return nil, err
	}

	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd, nil
		}
	}

	return nil, fmt.Errorf("command '%s' not found", name)
}

// GetCommandsWithPrefix returns commands that start with the given prefix
func (d *Discovery) GetCommandsWithPrefix(prefix string) ([]*CommandInfo, error) {
	commands, err := d.DiscoverCommands()
	if err != nil {
		return nil, err
	}

	var matching []*CommandInfo
	for _, cmd := range commands {
		if len(prefix) == 0 || strings.HasPrefix(cmd.Name, prefix) {
			matching = append(matching, cmd)
		}
	}

	return matching, nil
}
