// Package testutil provides shared test helpers for catalogs, state stores and output directories.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/storage"
)

// TestDB creates a temporary SQLite state store that is automatically cleaned up.
func TestDB(t *testing.T) *kvstore.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "showcase-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := kvstore.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestOutput creates a temporary output directory with a storage.Provider.
func TestOutput(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteCatalog writes raw catalog JSON to a temporary projects.json and
// returns its path.
func WriteCatalog(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// QuietLogger discards everything below error.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// SampleCatalog is a small catalog with three statuses and both categories.
const SampleCatalog = `[
  {"id": "alpha", "name": "Alpha", "description": "First tool", "tags": ["CLI", "go"],
   "status": "stable", "category": "installer", "lastUpdated": "2025-01-10",
   "repoUrl": "https://github.com/example/alpha", "highlights": ["Fast"]},
  {"id": "beta", "name": "Beta", "description": "Second tool", "tags": ["go"],
   "status": "in-progress", "category": "macro", "lastUpdated": "2025-03-02"},
  {"id": "gamma", "name": "Gamma", "description": "Third", "tags": [],
   "status": "planned", "category": "macro", "lastUpdated": "2024-12-31"}
]`
