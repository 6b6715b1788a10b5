package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKS_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKS_UI"); v != "" {
		cfg.UI = v
		setEnv("ui")
	}
	if v := os.Getenv("TASKS_FORMAT"); v != "" {
		cfg.Format = v
		setEnv("format")
	}

	// Logging configuration
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKS_LOG_TIMESTAMPS"); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("TASKS_LOG_TIMESTAMPS: %w", err)
		}
		cfg.LogTimestamps = b
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKS_LOG_CALLER"); v != "" {
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("TASKS_LOG_CALLER: %w", err)
		}
		cfg.LogCaller = b
		setEnv("log_caller")
	}
	if v := os.Getenv("TASKS_LOG_FILE"); v != "" {
		cfg.LogFile = v
		setEnv("log_file")
	}
	return nil
}

// boolFromString accepts the usual spellings plus yes/no and on/off.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
