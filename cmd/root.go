// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	cws    *config.ConfigWithSources
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
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
	if *help {
		printUsage(fs, stdout)
		return nil
	}

	cfg := cws.Config
	a := &app{
		cfg:    cfg,
		cws:    cws,
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewConsoleLogger(stderr,
			logging.OptionsFrom(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)),
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	a.logger.Debug("dispatch", "command", subcommand, "file", a.cfg.TodoFile)

	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "edit":
		return a.editCommand(remainingArgs)
	case "rm", "delete":
		return a.removeCommand(remainingArgs)
	case "done", "complete":
		return a.doneCommand(remainingArgs)
	case "sort":
		return a.sortCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "history":
		return a.historyCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the configured tasks file and, when enabled, attaches the
// change history. The returned close function is never nil.
func (a *app) openStore(logger *log.Logger) (*todo.Store, func(), error) {
	opts := []todo.Option{todo.WithLogger(logger)}
	closeFn := func() {}

	if a.cfg.History {
		history, err := logging.OpenHistory(a.cfg.LogDir, a.cfg.TodoFile)
		if err != nil {
			a.logger.Warn("history unavailable", "err", err)
		} else {
			opts = append(opts, todo.WithRecorder(history))
			closeFn = func() {
				if err := history.Close(); err != nil {
					a.logger.Warn("close history", "err", err)
				}
			}
		}
	}

	store, err := todo.Open(a.cfg.TodoFile, opts...)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return store, closeFn, nil
}

// tuiCommand launches the interactive shell.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	store, closeStore, err := a.openStore(logging.Discard())
	if err != nil {
		return err
	}
	defer closeStore()

	return ui.RunTUI(ctx, a.cfg, store)
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "todolist version %s\n", Version)
	return nil
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("todolist "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func noArgs(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - a to-do list kept in a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Interactive shell (default command)")
	fmt.Fprintln(w, "  add <title...>      Add a task")
	fmt.Fprintln(w, "  edit <n>            Edit task n")
	fmt.Fprintln(w, "  rm <n>              Delete task n")
	fmt.Fprintln(w, "  done <n>            Mark task n as completed")
	fmt.Fprintln(w, "  sort <key>          Sort by title, due date, priority, event or urgency")
	fmt.Fprintln(w, "  ls                  List tasks")
	fmt.Fprintln(w, "  history             Show recent changes")
	fmt.Fprintln(w, "  doctor              Check the tasks file, history and config")
	fmt.Fprintln(w, "  config              Show the effective configuration")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task numbers start at 1. Dates are YYYY-MM-DD.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -due string         Due date (required)")
	fmt.Fprintln(w, "  -priority string    High, Medium or Low (default from config)")
	fmt.Fprintln(w, "  -tags string        Comma-separated tags")
	fmt.Fprintln(w, "  -recurring          Mark as recurring")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit Options:")
	fmt.Fprintln(w, "  -title, -due, -priority, -tags, -recurring=bool")
	fmt.Fprintln(w, "        Only the given fields change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -format string      text, json or yaml (default text)")
	fmt.Fprintln(w, "  -pending            Hide completed tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History Options:")
	fmt.Fprintln(w, "  -n int              Number of entries to show (0 = all, default 20)")
	fmt.Fprintln(w, "  -f, -follow         Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -format string      text, json or yaml (ignored with -f)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example            Print an example todolist.toml")
}
