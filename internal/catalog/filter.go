package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/starford/showcase/internal/models"
)

// Visible returns the projects matching st, in the order st.Sort asks for.
// all is never modified.
func Visible(all []models.Project, st models.FilterState) []models.Project {
	q := strings.ToLower(strings.TrimSpace(st.Query))
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if matches(p, q, st) {
			out = append(out, p)
		}
	}
	sortFor(out, st.Sort)
	return out
}

func matches(p models.Project, q string, st models.FilterState) bool {
	if q != "" {
		hay := strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if st.Status != models.FilterAll && p.Status != st.Status {
		return false
	}
	if st.Tag != models.FilterAll && !slices.Contains(p.Tags, st.Tag) {
		return false
	}
	if st.Category != models.FilterAll && p.Category != st.Category {
		return false
	}
	return true
}

func sortFor(projects []models.Project, mode string) {
	switch mode {
	case models.SortRecent:
		slices.SortStableFunc(projects, func(a, b models.Project) int {
			return updatedAt(b).Compare(updatedAt(a))
		})
	case models.SortName:
		c := newCollator()
		slices.SortStableFunc(projects, func(a, b models.Project) int {
			return c.CompareString(a.Name, b.Name)
		})
	default:
		SortByStatus(projects)
	}
}

// updatedAt treats a missing or unparseable date as the Unix epoch.
func updatedAt(p models.Project) time.Time {
	if t, ok := ParseDate(p.LastUpdated); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// Tags returns every tag in the collection once, in collated order.
func Tags(all []models.Project) []string {
	var tags []string
	for _, p := range all {
		tags = append(tags, p.Tags...)
	}
	return uniqueSorted(tags)
}

// Categories returns every category in the collection once, in collated order.
func Categories(all []models.Project) []string {
	cats := make([]string, 0, len(all))
	for _, p := range all {
		if p.Category != "" {
			cats = append(cats, p.Category)
		}
	}
	return uniqueSorted(cats)
}

// Statuses returns every status in the collection once, in collated order.
func Statuses(all []models.Project) []string {
	statuses := make([]string, 0, len(all))
	for _, p := range all {
		if p.Status != "" {
			statuses = append(statuses, p.Status)
		}
	}
	return uniqueSorted(statuses)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	c := newCollator()
	slices.SortStableFunc(out, c.CompareString)
	return out
}

// Find returns the project whose id equals id exactly.
func Find(all []models.Project, id string) (models.Project, bool) {
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// FindKey returns the project whose merge key (lower-cased id, or name when
// id is empty) matches key case-insensitively.
func FindKey(all []models.Project, key string) (models.Project, bool) {
	key = strings.ToLower(key)
	if key == "" {
		return models.Project{}, false
	}
	for _, p := range all {
		if p.Key() == key {
			return p, true
		}
	}
	return models.Project{}, false
}

// Featured picks the project promoted in the release panel: the first
// installer, otherwise the first project.
func Featured(all []models.Project) (models.Project, bool) {
	for _, p := range all {
		if p.Category == models.CategoryInstaller {
			return p, true
		}
	}
	if len(all) == 0 {
		return models.Project{}, false
	}
	return all[0], true
}
