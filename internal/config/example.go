package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags

# Interface: "text" (line menu) or "tui" (full-screen menu)
ui = "text"

# Task list output in the text menu: "text" or "json"
format = "text"

# Logging
log_level = "warn"        # debug, info, warn, error
log_format = "text"       # text, json, logfmt
log_timestamps = false
log_caller = false

# Send logs to a file instead of stderr (supports ~ expansion)
# log_file = "~/.tasks/tasks.log"
`
}
