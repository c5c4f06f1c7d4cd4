// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"plumb-cli/internal/config"
	"plumb-cli/internal/discovery"
	"plumb-cli/internal/issue"
	"plumb-cli/internal/registry"
	"plumb-cli/pkg/plumbfile"
)

// listFlag controls whether to list commands
var listFlag bool

// cmdCmd is the parent command for all discovered commands
var cmdCmd = &cobra.Command{
	Use:   "cmd [command-name]",
	Short: "Run commands from plumbfiles",
	Long: `Run commands defined in plumbfiles.

Commands are discovered from:
  1. Current directory (highest priority)
  2. ~/.plumb/cmds/
  3. Configured search paths

Use 'plumb cmd' or 'plumb cmd --list' to see all available commands.
Use 'plumb cmd <command-name>' to run a command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If --list flag is set or no arguments, show list
		if listFlag || len(args) == 0 {
			return listCommands()
		}
		rendered, _ := issue.Get(issue.CommandNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return fmt.Errorf("command '%s' not found", args[0])
	},
	ValidArgsFunction: completeCommands,
}

func init() {
	cmdCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list all available commands")

	// Dynamically add discovered commands
	// This happens at init time to enable shell completion
	registerDiscoveredCommands()
}

// registerDiscoveredCommands compiles every discovered plumbfile command
// against the registry and adds the resolvable ones as subcommands.
func registerDiscoveredCommands() {
	cfg := config.Get()
	disc := discovery.New(cfg)

	commands, err := disc.DiscoverCommands()
	if err != nil {
		return // Silently fail during init
	}

	reg := registry.NewWithBuiltins()
	for _, cmdInfo := range commands {
		if err := reg.RegisterSpec(cmdInfo.Command); err != nil {
			log.Warn("skipping command", "command", cmdInfo.Name, "err", err)
		}
	}

	for _, cmdInfo := range commands {
		pipeline, err := reg.CompilePipeline(cmdInfo.Command)
		if err != nil {
			log.Warn("command has unresolvable stages", "command", cmdInfo.Name, "err", err)
			continue
		}
		cmdCmd.AddCommand(buildCobraCommand(cmdInfo, pipeline))
	}
}

// buildCobraCommand turns one compiled command into a cobra subcommand:
// options become typed flags, arguments become positional validators,
// and RunE resolves the invocation against the pipeline.
func buildCobraCommand(cmdInfo *discovery.CommandInfo, pipeline *registry.Pipeline) *cobra.Command {
	spec := cmdInfo.Command

	long := fmt.Sprintf("Run the '%s' command from %s", spec.Name, cmdInfo.FilePath)
	if spec.Help != "" {
		long = spec.Help + "\n\n" + long
	}

	newCmd := &cobra.Command{
		Use:   buildUsageString(spec),
		Short: cmdInfo.Description,
		Long:  long,
		Args:  buildArgsValidator(spec.Arguments),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, spec, pipeline, args)
		},
	}
	if spec.Section != "" {
		newCmd.Annotations = map[string]string{"section": spec.Section}
	}

	registerOptionFlags(newCmd, spec.Options)
	return newCmd
}

// flagName returns the cobra flag name for an option: the primary alias
// without its leading dashes.
func flagName(opt *plumbfile.OptionSpec) string {
	return strings.TrimLeft(opt.Name(), "-")
}

// registerOptionFlags declares one typed pflag per option.
func registerOptionFlags(c *cobra.Command, opts []*plumbfile.OptionSpec) {
	for _, opt := range opts {
		name := flagName(opt)
		multiple := opt.IsVariadic() || (opt.Multiple != nil && *opt.Multiple)

		switch {
		case opt.IsFlag || opt.Type == plumbfile.ParamTypeBool:
			c.Flags().Bool(name, boolDefault(opt), opt.Help)
		case multiple:
			c.Flags().StringArray(name, stringSliceDefault(opt), opt.Help)
		case opt.Type == plumbfile.ParamTypeInt:
			c.Flags().Int(name, intDefault(opt), opt.Help)
		case opt.Type == plumbfile.ParamTypeFloat:
			c.Flags().Float64(name, floatDefault(opt), opt.Help)
		default:
			c.Flags().String(name, stringDefault(opt), opt.Help)
		}

		if opt.Required {
			_ = c.MarkFlagRequired(name)
		}
		if opt.Hidden {
			_ = c.Flags().MarkHidden(name)
		}
	}
}

func boolDefault(opt *plumbfile.OptionSpec) bool {
	if !opt.HasDefault {
		return false
	}
	switch v := opt.Default.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

func intDefault(opt *plumbfile.OptionSpec) int {
	if !opt.HasDefault {
		return 0
	}
	switch v := opt.Default.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func floatDefault(opt *plumbfile.OptionSpec) float64 {
	if !opt.HasDefault {
		return 0
	}
	switch v := opt.Default.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func stringDefault(opt *plumbfile.OptionSpec) string {
	if !opt.HasDefault || opt.Default == nil {
		return ""
	}
	if s, ok := opt.Default.(string); ok {
		return s
	}
	return fmt.Sprint(opt.Default)
}

func stringSliceDefault(opt *plumbfile.OptionSpec) []string {
	if !opt.HasDefault {
		return nil
	}
	switch v := opt.Default.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// buildUsageString builds the cobra Use string including argument placeholders
func buildUsageString(spec *plumbfile.CommandSpec) string {
	parts := []string{spec.Name}

	for _, arg := range spec.Arguments {
		name := arg.CanonicalName()
		var argStr string
		switch {
		case arg.IsVariadic() && arg.Required:
			argStr = fmt.Sprintf("<%s>...", name)
		case arg.IsVariadic():
			argStr = fmt.Sprintf("[%s]...", name)
		case arg.Required:
			argStr = fmt.Sprintf("<%s>", name)
		default:
			argStr = fmt.Sprintf("[%s]", name)
		}
		parts = append(parts, argStr)
	}

	return strings.Join(parts, " ")
}

// buildArgsValidator creates a cobra positional validator for the
// declared arguments: at least every required argument, at most the
// declared count unless a variadic argument absorbs the rest.
func buildArgsValidator(argDefs []*plumbfile.ArgumentSpec) cobra.PositionalArgs {
	if len(argDefs) == 0 {
		return cobra.NoArgs
	}

	minArgs := 0
	maxArgs := len(argDefs)
	hasVariadic := false
	for _, arg := range argDefs {
		if arg.Required {
			minArgs++
		}
		if arg.IsVariadic() {
			hasVariadic = true
		}
	}

	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs {
			return fmt.Errorf("command '%s' requires at least %d argument(s), got %d", cmd.Name(), minArgs, len(args))
		}
		if !hasVariadic && len(args) > maxArgs {
			return fmt.Errorf("command '%s' accepts at most %d argument(s), got %d", cmd.Name(), maxArgs, len(args))
		}
		return nil
	}
}

// coerceValue converts a raw CLI string by the declared parameter type.
func coerceValue(t plumbfile.ParamType, name, raw string) (any, error) {
	switch t {
	case plumbfile.ParamTypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %q is not an integer", name, raw)
		}
		return n, nil
	case plumbfile.ParamTypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %q is not a number", name, raw)
		}
		return f, nil
	case plumbfile.ParamTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %q is not a boolean", name, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

// collectValues gathers the invocation's resolved parameter values:
// positional arguments first, option flags second, both under their
// canonical names.
func collectValues(cmd *cobra.Command, spec *plumbfile.CommandSpec, args []string) (map[string]any, error) {
	values := make(map[string]any)

	for i, arg := range spec.Arguments {
		name := arg.CanonicalName()

		if arg.IsVariadic() {
			var rest []any
			for _, raw := range args[min(i, len(args)):] {
				v, err := coerceValue(arg.Type, name, raw)
				if err != nil {
					return nil, err
				}
				rest = append(rest, v)
			}
			values[name] = rest
			break
		}

		if i >= len(args) {
			continue
		}
		v, err := coerceValue(arg.Type, name, args[i])
		if err != nil {
			return nil, err
		}
		values[name] = v
	}

	for _, opt := range spec.Options {
		name := flagName(opt)
		canonical := opt.CanonicalName()
		multiple := opt.IsVariadic() || (opt.Multiple != nil && *opt.Multiple)

		var (
			v   any
			err error
		)
		switch {
		case opt.IsFlag || opt.Type == plumbfile.ParamTypeBool:
			v, err = cmd.Flags().GetBool(name)
		case multiple:
			v, err = cmd.Flags().GetStringArray(name)
		case opt.Type == plumbfile.ParamTypeInt:
			v, err = cmd.Flags().GetInt(name)
		case opt.Type == plumbfile.ParamTypeFloat:
			v, err = cmd.Flags().GetFloat64(name)
		default:
			v, err = cmd.Flags().GetString(name)
		}
		if err != nil {
			return nil, fmt.Errorf("option '%s': %w", name, err)
		}
		values[canonical] = v
	}

	return values, nil
}

// runPipeline binds one invocation and prints the resolved stage plan.
// Stage execution is delegated to the base command runtimes; the plan
// is everything the compiler layer owns.
func runPipeline(cmd *cobra.Command, spec *plumbfile.CommandSpec, pipeline *registry.Pipeline, args []string) error {
	values, err := collectValues(cmd, spec, args)
	if err != nil {
		return err
	}

	inv, err := pipeline.NewInvocation(values)
	if err != nil {
		rendered, _ := issue.Get(issue.MissingInjectValueId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	printInvocation(inv)
	return nil
}

// printInvocation renders the resolved stage plan for one invocation.
func printInvocation(inv *registry.Invocation) {
	spec := inv.Pipeline.Spec

	fmt.Println(TitleStyle.Render(spec.Name))
	if inv.Injected.Len() > 0 {
		var pairs []string
		for _, name := range inv.Injected.Names() {
			v, _ := inv.Injected.Get(name)
			pairs = append(pairs, fmt.Sprintf("%s=%v", name, v))
		}
		fmt.Printf("  %s %s\n", SubtitleStyle.Render("inject:"), strings.Join(pairs, " "))
	}

	for i, stage := range inv.Pipeline.Stages {
		fmt.Printf("  %s %s\n", VerboseStyle.Render(fmt.Sprintf("stage %d:", i+1)), CmdStyle.Render(stage.Command.Name))
		for _, p := range stage.Params {
			switch {
			case p.FromOverride:
				fmt.Printf("    %s = %v\n", p.Name, p.Value)
			case p.HasValue:
				fmt.Printf("    %s = %v %s\n", p.Name, p.Value, SubtitleStyle.Render("(default)"))
			default:
				fmt.Printf("    %s %s\n", p.Name, SubtitleStyle.Render("(unbound)"))
			}
		}
	}
}

// completeCommands provides shell completion for commands
func completeCommands(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.Get()
	disc := discovery.New(cfg)

	commands, err := disc.DiscoverCommands()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, cmdInfo := range commands {
		if !strings.HasPrefix(cmdInfo.Name, toComplete) {
			continue
		}
		if cmdInfo.Description != "" {
			completions = append(completions, cmdInfo.Name+"\t"+cmdInfo.Description)
		} else {
			completions = append(completions, cmdInfo.Name)
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// listCommands displays all available commands
func listCommands() error {
	cfg := config.Get()
	disc := discovery.New(cfg)

	// First load all files to surface parsing errors
	files, err := disc.LoadAll()
	if err != nil {
		rendered, _ := issue.Get(issue.PlumbfileNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	for _, file := range files {
		if file.Error != nil {
			fmt.Fprintf(os.Stderr, "%s Failed to parse %s: %v\n", ErrorStyle.Render("✗"), file.Path, file.Error)
		}
	}

	commands, err := disc.DiscoverCommands()
	if err != nil {
		rendered, _ := issue.Get(issue.PlumbfileNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	if len(commands) == 0 {
		rendered, _ := issue.Get(issue.PlumbfileNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return fmt.Errorf("no commands found")
	}

	// Group commands by source
	bySource := make(map[discovery.Source][]*discovery.CommandInfo)
	for _, cmdInfo := range commands {
		bySource[cmdInfo.Source] = append(bySource[cmdInfo.Source], cmdInfo)
	}

	fmt.Println(TitleStyle.Render("Available Commands"))
	fmt.Println()

	sources := []discovery.Source{discovery.SourceCurrentDir, discovery.SourceUserDir, discovery.SourceConfigPath}
	for _, source := range sources {
		cmds := bySource[source]
		if len(cmds) == 0 {
			continue
		}

		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("From %s:", source.String())))

		for _, cmdInfo := range cmds {
			line := fmt.Sprintf("  %s", CmdStyle.Render(cmdInfo.Name))
			if cmdInfo.Description != "" {
				line += fmt.Sprintf(" - %s", VerboseStyle.Render(cmdInfo.Description))
			}
			if len(cmdInfo.Command.Stages) > 0 {
				stageNames := make([]string, len(cmdInfo.Command.Stages))
				for i, stage := range cmdInfo.Command.Stages {
					stageNames[i] = stage.Command
				}
				line += fmt.Sprintf(" [%s]", SuccessStyle.Render(strings.Join(stageNames, " | ")))
			}
			fmt.Println(line)
		}
		fmt.Println()
	}

	return nil
}
