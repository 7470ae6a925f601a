package catalog

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/starford/showcase/internal/models"
)

// Normalize converts decoded catalog records into Projects. Records that are
// not objects, or whose identity is hidden, are dropped. The result is in
// status order.
func Normalize(records []any, hide HideSet) []models.Project {
	out := make([]models.Project, 0, len(records))
	for _, item := range records {
		rec, ok := item.(map[string]any)
		if !ok || rec == nil {
			continue
		}
		p := fromRecord(rec)
		if hide.Hidden(p.Identity()) {
			continue
		}
		out = append(out, p)
	}
	SortByStatus(out)
	return out
}

func fromRecord(rec map[string]any) models.Project {
	return models.Project{
		ID:          text(rec["id"]),
		Name:        text(rec["name"]),
		Description: text(rec["description"]),
		Tags:        normalizeTags(rec["tags"]),
		Status:      orDefault(text(rec["status"]), models.StatusUnknown),
		Category:    orDefault(text(rec["category"]), models.CategoryMacro),
		Version:     text(rec["version"]),
		LastUpdated: text(rec["lastUpdated"]),
		RepoURL:     text(rec["repoUrl"]),
		DemoURL:     text(rec["demoUrl"]),
		Highlights:  normalizeHighlights(rec["highlights"]),
	}
}

// text stringifies truthy scalars; falsy values and containers become "".
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == 0 || math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "true"
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// NormalizeTag trims a tag; blank tags normalize to "".
func NormalizeTag(tag string) string {
	return strings.TrimSpace(tag)
}

func normalizeTags(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if tag := NormalizeTag(text(t)); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func normalizeHighlights(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, h := range raw {
		switch x := h.(type) {
		case string:
			out = append(out, x)
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
		}
	}
	return out
}

// statusRank orders stable < in-progress < planned < everything else.
func statusRank(status string) int {
	switch status {
	case models.StatusStable:
		return 0
	case models.StatusInProgress:
		return 1
	case models.StatusPlanned:
		return 2
	default:
		return 99
	}
}

// SortByStatus sorts in place by status rank, then by collated name.
func SortByStatus(projects []models.Project) {
	c := newCollator()
	slices.SortStableFunc(projects, func(a, b models.Project) int {
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra - rb
		}
		return c.CompareString(a.Name, b.Name)
	})
}
