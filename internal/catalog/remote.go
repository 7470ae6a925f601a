package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/starford/showcase/internal/models"
)

// DefaultRemoteEndpoint lists the organisation's public repositories.
const DefaultRemoteEndpoint = "https://api.github.com/users/BestFreeSoftwareCo/repos?per_page=100"

// RemoteTag marks projects that came from the repository listing.
const RemoteTag = "GitHub"

// Placeholders for remote records missing a name or description.
const (
	untitledRepo      = "Untitled repo"
	remotePlaceholder = "In development"
)

// repo is the subset of the repository listing record the site uses.
type repo struct {
	Name          string
	FullName      string
	Description   string
	Archived      bool
	Private       bool
	DefaultBranch string
	PushedAt      string
	UpdatedAt     string
	HTMLURL       string
}

// repoFromRecord reads a listing element loosely: a field of the wrong type
// counts as absent instead of discarding the whole repository.
func repoFromRecord(rec map[string]any) repo {
	return repo{
		Name:          text(rec["name"]),
		FullName:      text(rec["full_name"]),
		Description:   text(rec["description"]),
		Archived:      truthy(rec["archived"]),
		Private:       truthy(rec["private"]),
		DefaultBranch: text(rec["default_branch"]),
		PushedAt:      text(rec["pushed_at"]),
		UpdatedAt:     text(rec["updated_at"]),
		HTMLURL:       text(rec["html_url"]),
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string, float64:
		return text(x) != ""
	case map[string]any, []any:
		return true
	}
	return false
}

// RemoteLoader fetches the repository listing and maps it to Projects.
// It never fails the page: every fetch or decode problem yields no projects.
type RemoteLoader struct {
	endpoint  string
	hide      HideSet
	client    *http.Client
	logger    *slog.Logger
	userAgent string
	token     string
}

// RemoteOption configures a RemoteLoader.
type RemoteOption func(*RemoteLoader)

// WithRemoteHideSet sets the identities skipped before mapping.
func WithRemoteHideSet(h HideSet) RemoteOption {
	return func(r *RemoteLoader) { r.hide = h }
}

// WithRemoteHTTPClient sets the HTTP client.
func WithRemoteHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteLoader) { r.client = c }
}

// WithRemoteLogger sets the logger.
func WithRemoteLogger(logger *slog.Logger) RemoteOption {
	return func(r *RemoteLoader) { r.logger = logger }
}

// WithUserAgent sets the User-Agent header. The listing API rejects requests
// without one.
func WithUserAgent(ua string) RemoteOption {
	return func(r *RemoteLoader) { r.userAgent = ua }
}

// WithToken sends a bearer token to lift anonymous rate limits.
func WithToken(token string) RemoteOption {
	return func(r *RemoteLoader) { r.token = token }
}

// NewRemoteLoader creates a RemoteLoader. An empty endpoint uses
// DefaultRemoteEndpoint.
func NewRemoteLoader(endpoint string, opts ...RemoteOption) *RemoteLoader {
	if endpoint == "" {
		endpoint = DefaultRemoteEndpoint
	}
	r := &RemoteLoader{
		endpoint:  endpoint,
		hide:      DefaultHideSet(),
		client:    http.DefaultClient,
		logger:    slog.Default(),
		userAgent: "showcase",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the mapped repositories, or an empty slice if the listing
// cannot be fetched. The error is non-nil only when ctx is already done.
func (r *RemoteLoader) Load(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repos, err := r.fetch(ctx)
	if err != nil {
		r.logger.Warn("unable to fetch remote repositories",
			slog.String("endpoint", r.endpoint),
			slog.String("error", err.Error()))
		return []models.Project{}, nil
	}

	out := make([]models.Project, 0, len(repos))
	for _, rp := range repos {
		if r.hide.Hidden(rp.Name) || r.hide.Hidden(rp.FullName) {
			continue
		}
		out = append(out, fromRepo(rp))
	}
	return out, nil
}

func (r *RemoteLoader) fetch(ctx context.Context) ([]repo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("remote: read body: %w", err)
	}

	var elems []any
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("remote: decode listing: %w", err)
	}
	repos := make([]repo, 0, len(elems))
	for _, el := range elems {
		rec, ok := el.(map[string]any)
		if !ok || rec == nil {
			continue
		}
		repos = append(repos, repoFromRecord(rec))
	}
	return repos, nil
}

func fromRepo(rp repo) models.Project {
	p := models.Project{
		ID:          orDefault(rp.Name, rp.FullName),
		Name:        orDefault(rp.Name, untitledRepo),
		Description: orDefault(rp.Description, remotePlaceholder),
		Tags:        []string{RemoteTag},
		Status:      models.StatusInProgress,
		Category:    models.CategoryMacro,
		LastUpdated: orDefault(rp.PushedAt, rp.UpdatedAt),
		RepoURL:     rp.HTMLURL,
		Highlights:  []string{},
	}
	switch {
	case rp.Archived:
		p.Status = models.StatusArchived
	case rp.Private:
		p.Status = models.StatusPrivate
	}
	if rp.DefaultBranch != "" {
		p.Version = "branch: " + rp.DefaultBranch
	}
	return p
}
