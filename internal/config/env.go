package config

import (
	"os"
	"strings"

	"github.com/nibzard/todolist/internal/utils"
)

// loadFromEnv overrides config from TODOLIST_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODOLIST_FILE"); v != "" {
		cfg.TodoFile = v
		set("todo_file")
	}
	if v := os.Getenv("TODOLIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TODOLIST_HISTORY"); v != "" {
		cfg.History = boolFromString(v)
		set("history")
	}
	if v := os.Getenv("TODOLIST_DEFAULT_PRIORITY"); v != "" {
		cfg.DefaultPriority = v
		set("default_priority")
	}
	if v := os.Getenv("TODOLIST_TAGS"); v != "" {
		cfg.Tags = utils.SplitAndTrim(v, ",")
		set("tags")
	}

	// Logging configuration
	if v := os.Getenv("TODOLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TODOLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TODOLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TODOLIST_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
