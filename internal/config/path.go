// Package config loads banknotify settings and resolves the paths they name.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// memoryPath is the SQLite DSN for a throwaway database; it is never a file.
const memoryPath = ":memory:"

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "" || path == memoryPath {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// ResolvePath expands path and anchors a relative result at base, the
// directory of the config file that named it. An empty base leaves
// relative paths relative to the working directory.
func ResolvePath(path, base string) string {
	path = ExpandPath(path)
	if path == "" || path == memoryPath || base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// configDir reports the directory holding the config file in use, if any.
func configDir(configFile string) string {
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}
