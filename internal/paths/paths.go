// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "encre"

// DefaultDocumentName is the document opened when no path is given and no
// recent document exists.
const DefaultDocumentName = "untitled.md"

// ConfigDir returns the encre configuration directory, honoring
// XDG_CONFIG_HOME. Falls back to the current directory when no home
// directory can be determined.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, ".config", appDirName)
}

// ConfigFile returns the path of the primary config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the encre state directory (logs, recent documents),
// honoring XDG_STATE_HOME.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appDirName
	}
	return filepath.Join(home, ".local", "state", appDirName)
}

// StateFile returns the path of the editor state file.
func StateFile() string {
	return filepath.Join(StateDir(), "state.yaml")
}

// LogFile returns the path of the debug log file.
func LogFile() string {
	return filepath.Join(StateDir(), "debug.log")
}

// TracesFile returns the default path for trace file export.
func TracesFile() string {
	return filepath.Join(ConfigDir(), "traces", "traces.jsonl")
}

// ResolveDocument normalizes a user-supplied document path.
//
//   - ""                 -> ./untitled.md
//   - "/path/to/dir"     -> /path/to/dir/untitled.md (when dir exists)
//   - "/path/to/file.md" -> /path/to/file.md
//   - "notes"            -> notes.md (extension added when the bare path
//     does not exist)
func ResolveDocument(path string) string {
	if path == "" {
		return DefaultDocumentName
	}
	path = filepath.Clean(path)

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return filepath.Join(path, DefaultDocumentName)
		}
		return path
	}

	if filepath.Ext(path) == "" && !strings.HasSuffix(path, string(filepath.Separator)) {
		return path + ".md"
	}
	return path
}
