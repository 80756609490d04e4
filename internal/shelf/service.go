// Package shelf coordinates storage and the table-of-contents builder for
// the API and MCP surfaces.
package shelf

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/voss/nbshelf/internal/apperr"
	"github.com/voss/nbshelf/internal/checksum"
	"github.com/voss/nbshelf/internal/models"
	"github.com/voss/nbshelf/internal/storage"
	"github.com/voss/nbshelf/internal/toc"
)

// Service exposes shelf operations to the API and MCP layers.
type Service struct {
	store storage.Provider
	dir   string
}

// NewService creates a new shelf service over the given provider. dir is the
// shelf directory the table of contents is built from.
func NewService(store storage.Provider, dir string) *Service {
	return &Service{store: store, dir: dir}
}

// TOC renders the table-of-contents fragment for the shelf. The fragment is
// rebuilt from the directory on every call.
func (s *Service) TOC(_ context.Context) (string, error) {
	return toc.BuildDir(s.dir)
}

// List returns metadata for every notebook on the shelf.
func (s *Service) List(_ context.Context) ([]models.Notebook, error) {
	return s.store.List()
}

// Get returns the raw bytes and checksum of the named notebook.
func (s *Service) Get(_ context.Context, name string) ([]byte, string, error) {
	data, err := s.store.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", apperr.ErrNotFound
		}
		return nil, "", err
	}
	return data, checksum.Sum(data), nil
}

// Add writes a new notebook to the shelf. The name must carry the notebook
// extension and must not already exist.
func (s *Service) Add(_ context.Context, name string, content []byte) (*models.Notebook, error) {
	if !strings.HasSuffix(name, toc.Extension) || name == toc.Extension {
		return nil, apperr.ErrInvalidName
	}
	if _, err := s.store.Read(name); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(name, content); err != nil {
		return nil, err
	}
	return &models.Notebook{
		Path:      name,
		Title:     toc.Title(name),
		Checksum:  checksum.Sum(content),
		Size:      int64(len(content)),
		UpdatedAt: time.Now(),
	}, nil
}

// Remove deletes the named notebook from the shelf.
func (s *Service) Remove(_ context.Context, name string) error {
	if err := s.store.Delete(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}
