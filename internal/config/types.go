package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTodoFile  = "tasks.json"
	DefaultLogDir    = "~/.todolist"
	DefaultHistory   = true
	DefaultPriority  = "Medium"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

const (
	userConfigDirName    = ".todolist"
	osConfigSubdirectory = "todolist"
	configFileName       = "todolist.toml"
	hiddenConfigFileName = ".todolist.toml"
)

// DefaultTags returns the tags offered when adding a task.
func DefaultTags() []string {
	return []string{"Work", "Personal", "Urgent"}
}

// Config holds the full configuration for todolist.
type Config struct {
	// Paths
	TodoFile string `toml:"todo_file"`
	LogDir   string `toml:"log_dir"`

	// History records every change in a JSONL journal under LogDir.
	History bool `toml:"history"`

	// Shell defaults
	DefaultPriority string   `toml:"default_priority"`
	Tags            []string `toml:"tags"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
