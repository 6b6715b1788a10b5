package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandLogPath resolves $VAR references and a leading ~ in a log_file value.
// An unknown home directory leaves the ~ in place.
func expandLogPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
