package config

import (
	"flag"

	"github.com/nibzard/todolist/internal/utils"
)

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"file":           "todo_file",
	"log-dir":        "log_dir",
	"history":        "history",
	"priority":       "default_priority",
	"tags":           "tags",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses the global CLI flags. Parsing stops at the
// first non-flag argument so subcommands can parse the rest.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TodoFile, "file", cfg.TodoFile, "Path to the tasks file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for change history")
	fs.BoolVar(&cfg.History, "history", cfg.History, "Record changes in the history journal")

	// Shell defaults
	fs.StringVar(&cfg.DefaultPriority, "priority", cfg.DefaultPriority, "Default priority for new tasks (High|Medium|Low)")
	fs.Func("tags", "Comma-separated preset tags offered when adding tasks", func(v string) error {
		cfg.Tags = utils.SplitAndTrim(v, ",")
		return nil
	})

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
