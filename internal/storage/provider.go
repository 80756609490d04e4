// Package storage defines the shelf file-system abstraction.
package storage

import "github.com/voss/nbshelf/internal/models"

// Provider is the interface for shelf file operations. The shelf is a flat
// directory: names are bare filenames, never paths.
type Provider interface {
	// List returns metadata for every notebook file on the shelf, ordered by name.
	List() ([]models.Notebook, error)
	// Read returns the raw bytes of the named notebook.
	Read(name string) ([]byte, error)
	// Write atomically writes content to the named notebook.
	Write(name string, content []byte) error
	// Delete removes the named notebook from the shelf.
	Delete(name string) error
}
