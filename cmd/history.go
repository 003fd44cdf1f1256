package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/printer"
)

// historyCommand shows the change journal of the current tasks file.
func (a *app) historyCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history")
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 20, "Number of entries to show (0 = all)")
	format := fs.String("format", "text", "Output format (text|json|yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	path, err := logging.FindHistory(a.cfg.LogDir, a.cfg.TodoFile)
	if err != nil {
		return fmt.Errorf("finding history: %w", err)
	}
	if path == "" {
		fmt.Fprintln(a.stdout, "No history recorded.")
		return nil
	}

	if *follow {
		fmt.Fprintf(a.stderr, "Following: %s (Ctrl+C to stop)\n", path)
		return logging.TailHistory(ctx, a.stdout, path, *n, true)
	}

	p, err := printer.New(*format, a.stdout)
	if err != nil {
		return err
	}
	entries, err := logging.ReadHistory(path, *n)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	return p.PrintHistory(entries)
}
