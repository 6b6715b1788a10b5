package config

import (
	"flag"
)

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"ui":             "ui",
	"format":         "format",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"log-file":       "log_file",
}

// parseFlags defines the global flags on fs, bound to cfg, and parses args.
// If sources is non-nil, every flag set on the command line is recorded
// with SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}

	// Interface
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Interface to run (text, tui)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Task list output format (text, json)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if fieldName, ok := flagToSource[f.Name]; ok {
				sources[fieldName] = SourceFlag
			}
		})
	}
	return nil
}
