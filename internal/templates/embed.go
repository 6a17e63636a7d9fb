// Package templates embeds the built-in document starters used by
// "encre new".
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// documentTemplates embeds the starter markdown documents. Each file
// under documents/ becomes a template named after its basename.
//
//go:embed documents
var documentTemplates embed.FS

// FS returns the embedded filesystem containing the starter documents.
func FS() fs.FS {
	return documentTemplates
}

// Names returns the available template names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(documentTemplates, "documents")
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	slices.Sort(names)
	return names
}

// Load returns the markdown source of the named template.
func Load(name string) (string, error) {
	data, err := fs.ReadFile(documentTemplates, "documents/"+name+".md")
	if err != nil {
		return "", fmt.Errorf("unknown template %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return string(data), nil
}

// Title returns the template's first heading, or the name when it has
// none.
func Title(name string) (string, error) {
	src, err := Load(name)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(src, "\n") {
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return after, nil
		}
	}
	return name, nil
}
