// Package models defines the domain types for the project showcase.
package models

import (
	"encoding/json"
	"strings"
)

// Project statuses recognised by the catalog.
const (
	StatusStable     = "stable"
	StatusInProgress = "in-progress"
	StatusPlanned    = "planned"
	StatusArchived   = "archived"
	StatusPrivate    = "private"
	StatusUnknown    = "unknown"
)

// Categories with special meaning.
const (
	CategoryMacro     = "macro"
	CategoryInstaller = "installer"
)

// Project is one catalog entry describing a downloadable macro or tool.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	RepoURL     string   `json:"-"`
	DemoURL     string   `json:"-"`
	Highlights  []string `json:"highlights"`
}

// Key returns the merge key: the lower-cased id, or name when id is empty.
func (p Project) Key() string {
	return strings.ToLower(p.Identity())
}

// Identity returns id when present, otherwise name.
func (p Project) Identity() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Name
}

type projectJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	RepoURL     *string  `json:"repoUrl"`
	DemoURL     *string  `json:"demoUrl"`
	Highlights  []string `json:"highlights"`
}

// MarshalJSON writes absent links as null, matching the catalog file format.
func (p Project) MarshalJSON() ([]byte, error) {
	out := projectJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tags:        nonNil(p.Tags),
		Status:      p.Status,
		Category:    p.Category,
		Version:     p.Version,
		LastUpdated: p.LastUpdated,
		Highlights:  nonNil(p.Highlights),
	}
	if p.RepoURL != "" {
		out.RepoURL = &p.RepoURL
	}
	if p.DemoURL != "" {
		out.DemoURL = &p.DemoURL
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the canonical catalog shape. Raw, untrusted records go
// through catalog.Normalize instead.
func (p *Project) UnmarshalJSON(data []byte) error {
	var in projectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Project{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		Status:      in.Status,
		Category:    in.Category,
		Version:     in.Version,
		LastUpdated: in.LastUpdated,
		Highlights:  in.Highlights,
	}
	if in.RepoURL != nil {
		p.RepoURL = *in.RepoURL
	}
	if in.DemoURL != nil {
		p.DemoURL = *in.DemoURL
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
