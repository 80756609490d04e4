package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/voss/nbshelf/internal/checksum"
	"github.com/voss/nbshelf/internal/models"
	"github.com/voss/nbshelf/internal/toc"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the shelf directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute shelf directory.
func (f *FS) Root() string {
	return f.root
}

// resolve validates a notebook name and returns its absolute path. The shelf
// is flat, so anything that is not a bare filename is rejected.
func (f *FS) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty name")
	}
	if name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("storage: name must be a bare filename: %s", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("storage: name must not contain separators: %s", name)
	}
	return filepath.Join(f.root, name), nil
}

// List reads the shelf directory and returns metadata for every notebook file.
func (f *FS) List() ([]models.Notebook, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}

	var out []models.Notebook
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, toc.Extension) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("storage: stat %s: %w", name, err)
		}
		data, err := os.ReadFile(filepath.Join(f.root, name))
		if err != nil {
			return nil, fmt.Errorf("storage: read %s: %w", name, err)
		}
		out = append(out, models.Notebook{
			Path:      name,
			Title:     toc.Title(name),
			Checksum:  checksum.Sum(data),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Read returns the raw bytes of a shelf notebook.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".nbshelf-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Delete removes a notebook from the shelf.
func (f *FS) Delete(name string) error {
	abs, err := f.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}
