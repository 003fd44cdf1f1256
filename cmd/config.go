package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/todolist/internal/config"
)

// configCommand prints each effective setting with where it came from.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example todolist.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	cfg := a.cfg
	values := []struct {
		key   string
		value any
	}{
		{"todo_file", cfg.TodoFile},
		{"log_dir", cfg.LogDir},
		{"history", cfg.History},
		{"default_priority", cfg.DefaultPriority},
		{"tags", strings.Join(cfg.Tags, ", ")},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SETTING\tVALUE\tSOURCE")
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%v\t%s\n", v.key, v.value, a.cws.Sources[v.key])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout)
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.stdout, "Config files: none")
		return nil
	}
	fmt.Fprintln(a.stdout, "Config files (lowest priority first):")
	for _, f := range a.cws.Files {
		fmt.Fprintf(a.stdout, "  %s\n", f)
	}
	return nil
}
