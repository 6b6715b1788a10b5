package config

import "fmt"

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

// UI modes.
const (
	UIText = "text"
	UITUI  = "tui"
)

// Output formats for the task listing.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default values.
const (
	DefaultUI        = UIText
	DefaultFormat    = FormatText
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasks.
type Config struct {
	// Interface
	UI     string `toml:"ui"`
	Format string `toml:"format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	// LogFile redirects logs away from stderr. Needed for the TUI,
	// which owns the terminal while it runs.
	LogFile string `toml:"log_file"`
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.UI {
	case UIText, UITUI:
	default:
		return fmt.Errorf("invalid ui %q, must be one of: text, tui", c.UI)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q, must be one of: text, json", c.Format)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error, fatal", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"ui",
		"format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.UI = DefaultUI
	cfg.Format = DefaultFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.LogFile = ""
}
