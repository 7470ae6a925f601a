// Package storage writes the static catalog site to disk.
package storage

import "time"

// File describes one file under the output root.
type File struct {
	Path      string
	Checksum  string
	Size      int64
	UpdatedAt time.Time
}

// Provider is the interface the site builder writes through.
type Provider interface {
	// List returns every file under dir (relative to the root).
	List(dir string) ([]File, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
}
