// Package projectservice holds the merged project catalog in memory and
// serves read queries over it.
package projectservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/checksum"
	"github.com/starford/showcase/internal/models"
)

// Loader produces the merged catalog. *catalog.Pipeline satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]models.Project, error)
}

// Snapshot is one immutable load of the catalog.
type Snapshot struct {
	Projects []models.Project
	// JSON is the collection encoded as a projects.json document.
	JSON     []byte
	Checksum string
	Version  uint64
	LoadedAt time.Time
}

// Summary is a lightweight item in a list response.
type Summary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	LastUpdated string   `json:"lastUpdated"`
}

// Service keeps the latest snapshot. A failed reload keeps the previous one.
type Service struct {
	loader Loader
	logger *slog.Logger

	mu      sync.RWMutex
	current *Snapshot
	lastErr error
	version uint64
}

// NewService creates a service that loads through loader.
func NewService(loader Loader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{loader: loader, logger: logger}
}

// Reload loads the catalog again and swaps it in on success.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	projects, err := s.loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return nil, fmt.Errorf("projectservice: reload: %w", err)
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("projectservice: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.current = &Snapshot{
		Projects: projects,
		JSON:     data,
		Checksum: checksum.Sum(data),
		Version:  s.version,
		LoadedAt: time.Now(),
	}
	s.lastErr = nil
	s.logger.Info("catalog loaded",
		slog.Int("projects", len(projects)),
		slog.Uint64("version", s.version))
	return s.current, nil
}

// Snapshot returns the current catalog. It fails with
// apperr.ErrCatalogUnavailable until a load has succeeded.
func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		if s.lastErr != nil {
			return nil, s.lastErr
		}
		return nil, apperr.ErrCatalogUnavailable
	}
	return s.current, nil
}

// Ready reports whether a catalog is available.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Visible returns the projects matching st in display order.
func (s *Service) Visible(_ context.Context, st models.FilterState) ([]models.Project, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return catalog.Visible(snap.Projects, st), nil
}

// List is Visible reduced to summaries.
func (s *Service) List(ctx context.Context, st models.FilterState) ([]Summary, error) {
	projects, err := s.Visible(ctx, st)
	if err != nil {
		return nil, err
	}
	items := make([]Summary, len(projects))
	for i, p := range projects {
		items[i] = Summary{
			ID:          p.ID,
			Name:        p.Name,
			Status:      p.Status,
			Category:    p.Category,
			Tags:        nonNilSlice(p.Tags),
			LastUpdated: p.LastUpdated,
		}
	}
	return items, nil
}

// Get returns the project with the given id.
func (s *Service) Get(_ context.Context, id string) (models.Project, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.Project{}, err
	}
	p, ok := catalog.Find(snap.Projects, id)
	if !ok {
		return models.Project{}, apperr.ErrNotFound
	}
	return p, nil
}

// Tags returns every tag in the catalog.
func (s *Service) Tags(_ context.Context) ([]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return catalog.Tags(snap.Projects), nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
