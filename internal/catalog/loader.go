package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/starford/showcase/internal/models"
)

// maxCatalogBytes bounds how much of a catalog response is read.
const maxCatalogBytes = 8 << 20

// Loader reads the local catalog resource and falls back to an embedded
// dataset on any failure.
type Loader struct {
	source   string
	hide     HideSet
	fallback []byte
	client   *http.Client
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHideSet sets the identities dropped during normalization.
func WithHideSet(h HideSet) LoaderOption {
	return func(l *Loader) { l.hide = h }
}

// WithFallback replaces the embedded fallback dataset. data must be a JSON array.
func WithFallback(data []byte) LoaderOption {
	return func(l *Loader) { l.fallback = data }
}

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader for source, which is either an http(s) URL or a
// file path.
func NewLoader(source string, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:   source,
		hide:     DefaultHideSet(),
		fallback: embeddedFallback,
		client:   http.DefaultClient,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the configured catalog location.
func (l *Loader) Source() string {
	return l.source
}

// IsRemote reports whether the source is fetched over HTTP.
func (l *Loader) IsRemote() bool {
	return isURL(l.source)
}

// Load returns the normalized catalog. Failures to read or decode the source
// are logged and answered with the fallback dataset; an error is returned only
// when ctx is already done or the fallback itself is unusable.
func (l *Loader) Load(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.read(ctx)
	if err == nil {
		records, isArray, decErr := decodeRecords(data)
		switch {
		case decErr != nil:
			err = decErr
		case !isArray:
			err = fmt.Errorf("catalog: %s is not a JSON array", l.source)
		default:
			return Normalize(records, l.hide), nil
		}
	}

	l.logger.Warn("falling back to embedded project data",
		slog.String("source", l.source),
		slog.String("error", err.Error()))
	return l.Fallback()
}

// Fallback returns the normalized fallback dataset.
func (l *Loader) Fallback() ([]models.Project, error) {
	records, isArray, err := decodeRecords(l.fallback)
	if err != nil {
		return nil, fmt.Errorf("catalog: fallback: %w", err)
	}
	if !isArray {
		return nil, fmt.Errorf("catalog: fallback is not a JSON array")
	}
	return Normalize(records, l.hide), nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !isURL(l.source) {
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", l.source, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", l.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog: fetch %s: status %d", l.source, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}
	return data, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
