// Package storage defines the inbox folder abstraction.
package storage

import "github.com/starford/rapport/internal/models"

// Provider is the interface for inbox file operations. Paths are relative to
// the inbox root.
type Provider interface {
	// List returns the .md files directly inside dir. Subdirectories are not
	// descended into, so processed files moved aside are never listed again.
	List(dir string) ([]models.InboxFile, error)
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	Delete(path string) error
	Move(oldPath, newPath string) error
}
