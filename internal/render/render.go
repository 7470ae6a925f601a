// Package render turns projects into the HTML fragments the catalog page shows.
// Every value passes through html/template's contextual escaping.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/models"
)

// Display limits.
const (
	CardTagLimit        = 4
	ModalHighlightLimit = 8
)

var funcs = template.FuncMap{
	"status":     statusLabel,
	"formatDate": catalog.FormatDate,
	"first":      first,
}

var (
	cardT         = template.Must(template.New("card").Funcs(funcs).Parse(cardTmpl))
	modalBodyT    = template.Must(template.New("modalBody").Funcs(funcs).Parse(modalBodyTmpl))
	modalActionsT = template.Must(template.New("modalActions").Funcs(funcs).Parse(modalActionsTmpl))
	chipsT        = template.Must(template.New("chips").Parse(chipsTmpl))
	featuredT     = template.Must(template.New("featured").Parse(featuredTmpl))
)

func statusLabel(p models.Project) string {
	if p.Status == "" {
		return models.StatusUnknown
	}
	return p.Status
}

func first(n int, s []string) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func execute(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are static and data is plain structs; reaching this is a
		// programming error.
		panic(fmt.Sprintf("render: %s: %v", t.Name(), err))
	}
	return template.HTML(buf.String())
}

// Card renders one project card. expanded opens its detail panel.
func Card(p models.Project, expanded bool) template.HTML {
	return execute(cardT, struct {
		P        models.Project
		Expanded bool
	}{p, expanded})
}

// Grid renders cards for projects, expanding the one whose Key is
// expandedKey. An empty list renders the empty-state message instead.
func Grid(projects []models.Project, expandedKey string) template.HTML {
	if len(projects) == 0 {
		return EmptyState()
	}
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(string(Card(p, expandedKey != "" && p.Key() == expandedKey)))
	}
	return template.HTML(b.String())
}

// ModalParts is the detail modal's content. Title is plain text.
type ModalParts struct {
	Title   string
	Body    template.HTML
	Actions template.HTML
}

// Modal renders the detail modal for p.
func Modal(p models.Project) ModalParts {
	title := p.Name
	if title == "" {
		title = "Project"
	}
	return ModalParts{
		Title:   title,
		Body:    execute(modalBodyT, p),
		Actions: execute(modalActionsT, p),
	}
}

// TagChips renders one filter chip per tag, marking active.
func TagChips(tags []string, active string) template.HTML {
	return execute(chipsT, struct {
		Tags   []string
		Active string
	}{tags, active})
}

// EmptyState is shown when no project matches the filters.
func EmptyState() template.HTML {
	return template.HTML(emptyTmpl)
}

// Failure is shown when the catalog could not be loaded at all.
func Failure() template.HTML {
	return template.HTML(failureTmpl)
}

// FeaturedView is the release panel promoting one project.
type FeaturedView struct {
	Version    string
	Date       string
	Notes      string
	ReleaseURL string
	RepoURL    string
}

// Featured builds the release panel for p.
func Featured(p models.Project) FeaturedView {
	v := FeaturedView{
		Version:    p.Version,
		Date:       catalog.FormatDate(p.LastUpdated),
		Notes:      strings.Join(p.Highlights, " · "),
		ReleaseURL: "#",
		RepoURL:    "#",
	}
	if v.Version == "" {
		v.Version = p.Name
	}
	if v.Notes == "" {
		v.Notes = p.Description
	}
	if v.Notes == "" {
		v.Notes = "Latest update available."
	}
	if p.RepoURL != "" {
		v.ReleaseURL = strings.TrimRight(p.RepoURL, "/") + "/releases/latest"
		v.RepoURL = p.RepoURL
	}
	return v
}

// FeaturedHTML renders the release panel.
func FeaturedHTML(v FeaturedView) template.HTML {
	return execute(featuredT, v)
}
