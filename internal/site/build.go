// Package site renders the catalog as a static site: an index.html showing
// the first paint and the merged projects.json beside it.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/starford/showcase/internal/checksum"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/render"
	"github.com/starford/showcase/internal/storage"
	"github.com/starford/showcase/internal/ui"
)

// Output file names.
const (
	IndexFile    = "index.html"
	ProjectsFile = "projects.json"
)

// Options tune the generated page.
type Options struct {
	Title  string
	Theme  string
	Logger *slog.Logger
}

// Result reports which files changed.
type Result struct {
	Written   []string
	Unchanged []string
}

// Build writes index.html and projects.json for projects into out.
func Build(out storage.Provider, projects []models.Project, opts Options) (Result, error) {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("site: encode projects: %w", err)
	}

	page := ui.NewController(projects).Page(opts.Theme, false)
	page.Title = opts.Title
	var html bytes.Buffer
	if err := render.Page(&html, page); err != nil {
		return Result{}, fmt.Errorf("site: %w", err)
	}

	return publish(out, opts.logger(), map[string][]byte{
		ProjectsFile: data,
		IndexFile:    html.Bytes(),
	})
}

// BuildFailure writes the terminal failure page. Any existing projects.json
// is left alone.
func BuildFailure(out storage.Provider, opts Options) (Result, error) {
	v := ui.FailureView()
	var html bytes.Buffer
	if err := render.Page(&html, render.PageData{
		Title: opts.Title,
		Theme: opts.Theme,
		Grid:  v.Grid,
		Count: v.Count,
	}); err != nil {
		return Result{}, fmt.Errorf("site: %w", err)
	}
	return publish(out, opts.logger(), map[string][]byte{IndexFile: html.Bytes()})
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// publish writes files in a fixed order, skipping ones whose content is
// already on disk.
func publish(out storage.Provider, logger *slog.Logger, files map[string][]byte) (Result, error) {
	existing, err := out.List("")
	if err != nil {
		return Result{}, fmt.Errorf("site: %w", err)
	}
	onDisk := make(map[string]string, len(existing))
	for _, f := range existing {
		onDisk[f.Path] = f.Checksum
	}

	var res Result
	for _, name := range []string{ProjectsFile, IndexFile} {
		content, ok := files[name]
		if !ok {
			continue
		}
		if sum, ok := onDisk[name]; ok && sum == checksum.Sum(content) {
			res.Unchanged = append(res.Unchanged, name)
			continue
		}
		if err := out.Write(name, content); err != nil {
			return res, fmt.Errorf("site: write %s: %w", name, err)
		}
		logger.Info("wrote site file", slog.String("path", name), slog.Int("bytes", len(content)))
		res.Written = append(res.Written, name)
	}
	return res, nil
}
