// Package models defines the domain types for nbshelf.
package models

import "time"

// Notebook describes a single notebook file on the shelf. Everything here is
// derived from the directory entry and the raw file bytes; notebook contents
// are never parsed.
type Notebook struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
