// Package toc renders the HTML table of contents for a shelf of notebooks.
package toc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// Header opens every generated table of contents.
	Header = "<h2>Table of Contents</h2><p>"

	// Extension identifies notebook files.
	Extension = ".ipynb"

	// IndexName is the reserved notebook that never appears in the listing.
	IndexName = "Index.ipynb"
)

// Build renders the table of contents for the process working directory.
func Build() (string, error) {
	return BuildDir(".")
}

// BuildDir renders the table of contents for dir: one list item per notebook
// file found at the top level, excluding the index notebook itself. Each
// entry links to the original filename and is titled with the filename minus
// its extension. Entries are ordered by filename, so repeated builds over an
// unchanged directory return identical bytes.
//
// If dir holds no notebooks the result is the bare header fragment. Errors
// from reading the directory are returned as-is.
func BuildDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Extension) || name == IndexName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{Header}
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("<li><a href='%s' target='_blank'>%s</a></li>", name, Title(name)))
	}
	return strings.Join(parts, "\n"), nil
}

// Title derives the display title of a notebook: the filename with its
// extension stripped.
func Title(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
