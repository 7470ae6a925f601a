package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/showcase/internal/apperr"
	"github.com/starford/showcase/internal/models"
)

// ErrCatalogUnavailable is returned when neither source produced a result.
var ErrCatalogUnavailable = apperr.ErrCatalogUnavailable

// Source produces projects for the pipeline.
type Source interface {
	Load(ctx context.Context) ([]models.Project, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]models.Project, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) ([]models.Project, error) {
	return f(ctx)
}

// Empty is a Source that always yields nothing.
var Empty Source = SourceFunc(func(context.Context) ([]models.Project, error) {
	return []models.Project{}, nil
})

// Outcome is the settled result of one source.
type Outcome struct {
	Projects []models.Project
	Err      error
}

// Pipeline loads the local catalog and the remote listing concurrently and
// merges them. Local is authoritative; the remote listing only fills gaps.
type Pipeline struct {
	Local  Source
	Remote Source
	Hide   HideSet
	// Fallback is used when Local is rejected. Nil means no fallback.
	Fallback func() ([]models.Project, error)

	LocalTimeout  time.Duration
	RemoteTimeout time.Duration
	Logger        *slog.Logger
}

// Settle runs both sources to completion. Neither failure cancels the other.
func (p *Pipeline) Settle(ctx context.Context) (local, remote Outcome) {
	var g errgroup.Group
	g.Go(func() error {
		local = settle(ctx, p.Local, p.LocalTimeout)
		return nil
	})
	g.Go(func() error {
		remote = settle(ctx, p.Remote, p.RemoteTimeout)
		return nil
	})
	_ = g.Wait()
	return local, remote
}

// Load settles both sources and merges them. It fails only when both sources
// are rejected.
func (p *Pipeline) Load(ctx context.Context) ([]models.Project, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	local, remote := p.Settle(ctx)
	if local.Err != nil && remote.Err != nil {
		return nil, fmt.Errorf("%w: local: %v; remote: %v", ErrCatalogUnavailable, local.Err, remote.Err)
	}

	localProjects := local.Projects
	if local.Err != nil {
		logger.Warn("local catalog rejected", slog.String("error", local.Err.Error()))
		localProjects = nil
		if p.Fallback != nil {
			fb, err := p.Fallback()
			if err != nil {
				logger.Warn("fallback unusable", slog.String("error", err.Error()))
			}
			localProjects = fb
		}
	}

	remoteProjects := remote.Projects
	if remote.Err != nil {
		logger.Warn("remote listing rejected", slog.String("error", remote.Err.Error()))
		remoteProjects = nil
	}

	merged := Merge(localProjects, remoteProjects, p.Hide)
	logger.Debug("catalog merged",
		slog.Int("local", len(localProjects)),
		slog.Int("remote", len(remoteProjects)),
		slog.Int("total", len(merged)))
	return merged, nil
}

func settle(ctx context.Context, src Source, timeout time.Duration) (out Outcome) {
	if src == nil {
		return Outcome{Projects: []models.Project{}}
	}
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: fmt.Errorf("catalog: source panicked: %v", r)}
		}
	}()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	projects, err := src.Load(ctx)
	if err != nil {
		return Outcome{Err: err}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return Outcome{Projects: projects}
}

// IsUnavailable reports whether err means the whole catalog failed to load.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}
