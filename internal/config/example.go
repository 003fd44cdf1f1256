package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by TODOLIST_* environment variables or CLI flags.

# Tasks file (relative to the working directory)
todo_file = "tasks.json"

# Directory for the change history (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.todolist"

# Record every change in a JSONL history journal
history = true

# Priority preselected when adding a task: High, Medium or Low
default_priority = "Medium"

# Tags offered when adding a task
tags = ["Work", "Personal", "Urgent"]

# Logging: debug, info, warn, error
log_level = "warn"
# text, json or logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
