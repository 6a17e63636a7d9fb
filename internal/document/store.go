package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/encre/internal/log"
)

// Load reads and parses the document at path. Missing files surface as
// errors; callers decide whether that means "start a fresh document".
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's command line
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	r := ParseString(string(data))
	log.Info(log.CatDocument, "document loaded", "path", path, "blocks", r.Len())
	return r, nil
}

// Save serializes the registry and writes it to path atomically via a
// temp file in the same directory.
func Save(path string, r *Registry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	content := Serialize(r)
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing document: %w", err)
	}

	log.Info(log.CatDocument, "document saved", "path", path, "blocks", r.Len(), "bytes", len(content))
	return nil
}
