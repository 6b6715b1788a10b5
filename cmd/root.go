// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/shell"
	"github.com/nibzard/tasks-go/internal/task"
	"github.com/nibzard/tasks-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// IO bundles the streams a command talks to.
type IO struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// StdIO returns the process's standard streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// Run executes the tasks CLI on the process's standard streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, StdIO())
}

// RunWithIO executes the tasks CLI on the given streams.
func RunWithIO(ctx context.Context, args []string, stdio IO) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(stdio.ErrOut)
	fs.Usage = func() {
		printUsage(fs, stdio.ErrOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdio.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(stdio.Out)
	}

	// Determine the subcommand
	// If no args, the configured UI decides what runs
	subcommand := cfg.UI
	if subcommand == config.UIText {
		subcommand = "menu"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "menu":
		return menuCommand(ctx, cfg, remainingArgs, stdio)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, stdio)
	case "config":
		return configCommand(cws, remainingArgs, stdio.Out)
	case "completion":
		return completionCommand(remainingArgs, stdio.Out)
	case "version":
		return versionCommand(stdio.Out)
	case "help":
		printUsage(fs, stdio.Out)
		return nil
	default:
		fmt.Fprintf(stdio.ErrOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, stdio.ErrOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func loggingOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		File:       cfg.LogFile,
	}
}

// menuCommand runs the line-oriented menu.
func menuCommand(ctx context.Context, cfg *config.Config, args []string, stdio IO) error {
	fs := flag.NewFlagSet("tasks menu", flag.ContinueOnError)
	fs.SetOutput(stdio.ErrOut)
	format := fs.String("format", cfg.Format, "Task list output format (text, json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch *format {
	case config.FormatText, config.FormatJSON:
	default:
		return fmt.Errorf("invalid format %q, must be one of: text, json", *format)
	}

	logger, closeLog, err := logging.Open(loggingOptions(cfg), stdio.ErrOut)
	if err != nil {
		return err
	}
	defer closeLog()

	sh := shell.New(task.NewStore(), stdio.In, stdio.Out,
		shell.WithLogger(logger),
		shell.WithJSON(*format == config.FormatJSON),
	)
	return sh.Run(ctx)
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, stdio IO) error {
	fs := flag.NewFlagSet("tasks tui", flag.ContinueOnError)
	fs.SetOutput(stdio.ErrOut)
	inline := fs.Bool("inline", false, "Draw inline instead of using the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// The TUI owns the terminal, so logs only go somewhere if a file is set.
	logger, closeLog, err := logging.Open(loggingOptions(cfg), io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	return ui.RunTUI(ctx, task.NewStore(),
		ui.WithLogger(logger),
		ui.WithAltScreen(!*inline),
	)
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tasks config", flag.ContinueOnError)
	fs.SetOutput(out)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(out, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(out, "Configuration:")
	for _, field := range cws.Fields() {
		fmt.Fprintf(out, "  %-16s %-10v (%s)\n", field, displayValue(cws.Value(field)), cws.Source(field))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, file := range cws.Files {
		fmt.Fprintf(out, "  %s\n", file)
	}
	return nil
}

func displayValue(v interface{}) interface{} {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	return v
}

func versionCommand(out io.Writer) error {
	fmt.Fprintf(out, "tasks version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasks - An in-memory task list with a text menu")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  menu          Run the text menu (default)")
	fmt.Fprintln(w, "  tui           Run the full-screen menu")
	fmt.Fprintln(w, "  config        Show effective configuration and its sources")
	fmt.Fprintln(w, "  completion    Print a shell completion script (bash|zsh|fish)")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Menu Options (use with 'menu' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Task list output format (text, json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TUI Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -inline")
	fmt.Fprintln(w, "        Draw inline instead of using the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks live in memory only and are gone when the program exits.")
}

// commandNames lists the subcommands offered by shell completion.
func commandNames() []string {
	return []string{"menu", "tui", "config", "completion", "version", "help"}
}

func completionCommand(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("completion requires a shell (bash|zsh|fish)")
	}
	cmds := strings.Join(commandNames(), " ")
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Fprintf(out, bashCompletion, cmds)
	case "zsh":
		fmt.Fprintf(out, zshCompletion, cmds)
	case "fish":
		fmt.Fprintf(out, fishCompletion, cmds)
	default:
		return fmt.Errorf("unsupported shell %q (want bash, zsh, or fish)", args[0])
	}
	return nil
}

const bashCompletion = `# tasks bash completion
_tasks() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "%s" -- "$cur") )
    fi
}
complete -F _tasks tasks
`

const zshCompletion = `#compdef tasks
_tasks() {
    local -a cmds
    cmds=(%s)
    _arguments '1:command:($cmds)'
}
_tasks "$@"
`

const fishCompletion = `# tasks fish completion
complete -c tasks -f -n "__fish_use_subcommand" -a "%s"
`
