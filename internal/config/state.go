package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const maxRecentDocuments = 10

// State holds editor state that persists across sessions, separate from
// user configuration.
type State struct {
	// RecentDocuments is ordered most-recent-first.
	RecentDocuments []string `yaml:"recent_documents"`
}

// LoadState reads the state file. A missing file yields an empty state.
func LoadState(path string) (State, error) {
	var st State

	data, err := os.ReadFile(path) //nolint:gosec // G304: state path comes from paths.StateFile
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("reading state: %w", err)
	}

	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parsing state: %w", err)
	}
	return st, nil
}

// Touch records a document as most recently used, deduplicating and
// truncating the list.
func (s *State) Touch(document string) {
	abs, err := filepath.Abs(document)
	if err != nil {
		abs = document
	}

	recent := make([]string, 0, len(s.RecentDocuments)+1)
	recent = append(recent, abs)
	for _, doc := range s.RecentDocuments {
		if doc != abs {
			recent = append(recent, doc)
		}
	}
	if len(recent) > maxRecentDocuments {
		recent = recent[:maxRecentDocuments]
	}
	s.RecentDocuments = recent
}

// MostRecent returns the most recently used document that still exists.
func (s State) MostRecent() (string, bool) {
	for _, doc := range s.RecentDocuments {
		if _, err := os.Stat(doc); err == nil {
			return doc, true
		}
	}
	return "", false
}

// SaveState writes the state file atomically (temp file, then rename).
func SaveState(path string, st State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".state.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
