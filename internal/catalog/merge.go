package catalog

import "github.com/starford/showcase/internal/models"

// Merge combines the local catalog with remote projects. Entries are keyed by
// lower-cased id-or-name; local entries win every collision and remote entries
// only fill gaps. Hidden entries are dropped from both sides. The result is in
// status order.
func Merge(local, remote []models.Project, hide HideSet) []models.Project {
	index := make(map[string]int, len(local)+len(remote))
	out := make([]models.Project, 0, len(local)+len(remote))

	for _, p := range local {
		if hide.Hidden(p.Identity()) {
			continue
		}
		key := p.Key()
		if i, ok := index[key]; ok {
			// Later local duplicates replace earlier ones in place.
			out[i] = p
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}

	for _, p := range remote {
		if hide.Hidden(p.Identity()) {
			continue
		}
		key := p.Key()
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}

	SortByStatus(out)
	return out
}
