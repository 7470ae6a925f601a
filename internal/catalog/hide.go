// Package catalog loads, normalizes, merges and filters the project catalog.
package catalog

import "strings"

// DefaultHidden lists the identities that never appear on the site.
var DefaultHidden = []string{
	"macro-creator",
	"bestfreesoftwareco",
	"bestfreesoftwareco.github.io",
}

// HideSet is a case-insensitive denylist of project identities.
// The zero value hides nothing.
type HideSet struct {
	ids map[string]struct{}
}

// NewHideSet builds a HideSet from ids. Blank ids are ignored.
func NewHideSet(ids ...string) HideSet {
	set := HideSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		set.ids[id] = struct{}{}
	}
	return set
}

// DefaultHideSet returns a HideSet over DefaultHidden.
func DefaultHideSet() HideSet {
	return NewHideSet(DefaultHidden...)
}

// Hidden reports whether id matches an entry, ignoring case.
func (h HideSet) Hidden(id string) bool {
	if len(h.ids) == 0 || id == "" {
		return false
	}
	_, ok := h.ids[strings.ToLower(id)]
	return ok
}

// Len returns the number of hidden identities.
func (h HideSet) Len() int {
	return len(h.ids)
}
