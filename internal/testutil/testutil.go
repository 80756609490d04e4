// Package testutil provides shared test helpers for setting up shelves.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voss/nbshelf/internal/storage"
)

// TestShelf creates a temporary shelf directory with a storage.Provider.
func TestShelf(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteNotebook drops a minimal notebook file directly onto the shelf.
func WriteNotebook(t *testing.T, dir, name string) {
	t.Helper()
	content := []byte(`{"cells": [], "nbformat": 4, "nbformat_minor": 5}`)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		t.Fatal(err)
	}
}
