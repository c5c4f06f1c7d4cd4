// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PlumbfileNotFoundId Id = iota + 1
	PlumbfileParseErrorId
	CommandNotFoundId
	UnknownBaseCommandId
	UnknownParameterId
	DuplicateCommandId
	MissingInjectValueId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	plumbfileNotFoundIssue = &Issue{
		id: PlumbfileNotFoundId,
		mdMsg: `
# No plumbfile found!

We searched for a plumbfile but couldn't find one in the expected locations.

## Search locations (in order of precedence):
1. Current directory
2. ~/.plumb/cmds/
3. Paths configured in your config file (search_paths)

## Things you can try:
- Create a plumbfile in your current directory:
~~~
$ plumb init
~~~

- Or specify a different directory:
~~~
$ cd /path/to/your/project
$ plumb cmd --list
~~~

## Example plumbfile structure:
~~~cue
version: "1.0"
description: "My pipeline commands"

cmds: [
  {
    name: "grep-count"
    help: "Count lines matching a pattern"
    arguments: [{name: "pattern"}]
    stage: [
      {command: "filter", params: {code: "pattern in line"}},
      {command: "reduce", params: {function: "count"}},
    ]
  },
]
~~~`,
	}

	plumbfileParseErrorIssue = &Issue{
		id: PlumbfileParseErrorId,
		mdMsg: `
# Failed to parse plumbfile!

Your plumbfile contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE or TOML syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields
- Missing required fields (name and stage for commands)

## Things you can try:
- Check the error message above for the specific field path
- Validate the file without running anything:
~~~
$ plumb validate
~~~

- Run with verbose mode for more details:
~~~
$ plumb --verbose cmd --list
~~~

## Example of a valid command definition:
~~~cue
cmds: [
  {
    name: "replace"
    help: "Substitute one string for another"
    arguments: [
      {name: "old"},
      {name: "new"},
    ]
    stage: [
      {command: "map", params: {code: "line.replace(old, new)"}},
    ]
    inject_values: ["old", "new"]
  },
]
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The command you specified was not found in any of the available plumbfiles.

## Things you can try:
- List all available commands:
~~~
$ plumb cmd --list
~~~

- Check for typos in the command name
- Verify the plumbfile contains your command definition
- Use tab completion:
~~~
$ plumb cmd <TAB>
~~~`,
	}

	unknownBaseCommandIssue = &Issue{
		id: UnknownBaseCommandId,
		mdMsg: `
# Unknown base command!

A stage references a command that is not registered.

## Things you can try:
- Check the stage's 'command' field for typos
- List registered commands (built-ins plus plumbfile commands):
~~~
$ plumb cmd --list
~~~

- If the stage references another plumbfile command, make sure its
  plumbfile is in a discovered location`,
	}

	unknownParameterIssue = &Issue{
		id: UnknownParameterId,
		mdMsg: `
# Unknown parameter!

A stage override or remap references a parameter the base command does
not have.

## Remember:
- 'remap_params[].old' must name a parameter of the base command
- 'params' keys use stage-local names, so a renamed parameter must be
  referenced by its new name, not the original one

## Example:
~~~cue
stage: [
  {
    command: "grep-count"
    remap_params: [{new: "needle", old: "pattern"}]
    params: {needle: "TODO"}  // not {pattern: "TODO"}
  },
]
~~~`,
	}

	duplicateCommandIssue = &Issue{
		id: DuplicateCommandId,
		mdMsg: `
# Duplicate command name!

Two commands with the same name were found. Command names must be
unique across built-ins and every discovered plumbfile.

## Things you can try:
- Rename one of the commands
- Remove one of the plumbfiles from the search paths
- Remember that discovery is first-wins: the earlier location keeps
  the name`,
	}

	missingInjectValueIssue = &Issue{
		id: MissingInjectValueId,
		mdMsg: `
# Missing inject value!

A command's 'inject_values' entry does not match any of its resolved
parameters.

## Remember:
- inject_values names must be declared as arguments or options of the
  same command
- Option names are canonicalized: '--exit-code' becomes 'exit_code'

## Example:
~~~cue
{
  name: "replace"
  arguments: [{name: "old"}, {name: "new"}]
  inject_values: ["old", "new"]  // must match the declarations above
  stage: [...]
}
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the plumb configuration file.

## Configuration file locations:
- Linux: ~/.config/plumb/config.cue
- macOS: ~/Library/Application Support/plumb/config.cue
- Windows: %APPDATA%\plumb\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/plumb/config.cue
~~~

## Example configuration:
~~~cue
search_paths: [
    "/home/user/global-commands"
]
strict_names: true
log_level: "info"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		plumbfileNotFoundIssue.Id():   plumbfileNotFoundIssue,
		plumbfileParseErrorIssue.Id(): plumbfileParseErrorIssue,
		commandNotFoundIssue.Id():     commandNotFoundIssue,
		unknownBaseCommandIssue.Id():  unknownBaseCommandIssue,
		unknownParameterIssue.Id():    unknownParameterIssue,
		duplicateCommandIssue.Id():    duplicateCommandIssue,
		missingInjectValueIssue.Id():  missingInjectValueIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
