package api

import (
	"github.com/starford/showcase/internal/projectservice"
	"github.com/starford/showcase/internal/ui"
)

// DispatchResponse carries the DOM patches produced by one UI event.
type DispatchResponse struct {
	Patches []ui.Patch `json:"patches"`
	Count   string     `json:"count"`
	Failed  bool       `json:"failed,omitempty"`
}

// ThemeResponse is returned after toggling the theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// ProjectSummary is a lightweight item in a list response.
type ProjectSummary = projectservice.Summary

// ProjectListResponse wraps the visible projects for a filter.
type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
	Shown    int              `json:"shown"`
	Total    int              `json:"total"`
}
