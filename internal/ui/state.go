// Package ui holds the catalog page state machine: a pure reducer over
// State, and a Controller that projects State onto a Surface.
package ui

import (
	"github.com/starford/showcase/internal/models"
)

// Event kinds.
const (
	KindSearch     = "search"
	KindStatus     = "status"
	KindCategory   = "category"
	KindSort       = "sort"
	KindTag        = "tag"
	KindClear      = "clear"
	KindExpand     = "expand"
	KindDetails    = "details"
	KindCloseModal = "close-modal"
	KindKey        = "key"
	KindRefresh    = "refresh"
)

// KeyEscape is the key event value that closes an open modal.
const KeyEscape = "Escape"

// State is everything the page shows that is not the collection itself.
// ExpandedID and ModalID hold a project's Key; empty means nothing is open.
type State struct {
	Filter     models.FilterState `json:"filter"`
	ExpandedID string             `json:"expandedId,omitempty"`
	ModalID    string             `json:"modalId,omitempty"`
}

// DefaultState is the state of a fresh page with no saved filters.
func DefaultState() State {
	return State{Filter: models.DefaultFilterState()}
}

// Event is one user interaction. Value carries the input's new value for
// filter kinds and the key name for KindKey; ProjectID targets expand/details
// and is the value of the card's data-project-id (the project Key).
type Event struct {
	Kind      string `json:"kind"`
	Value     string `json:"value,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

// Known reports whether kind is an event the reducer understands.
func Known(kind string) bool {
	switch kind {
	case KindSearch, KindStatus, KindCategory, KindSort, KindTag, KindClear,
		KindExpand, KindDetails, KindCloseModal, KindKey, KindRefresh:
		return true
	}
	return false
}

// AffectsFilter reports whether kind changes the persisted FilterState.
func AffectsFilter(kind string) bool {
	switch kind {
	case KindSearch, KindStatus, KindCategory, KindSort, KindTag, KindClear:
		return true
	}
	return false
}

// Reduce returns the state after ev. It never mutates s and ignores unknown
// kinds. Project ids are not checked here; the Controller drops events that
// target projects it does not hold.
func Reduce(s State, ev Event) State {
	switch ev.Kind {
	case KindSearch:
		s.Filter.Query = ev.Value
	case KindStatus:
		s.Filter.Status = orAll(ev.Value)
	case KindCategory:
		s.Filter.Category = orAll(ev.Value)
	case KindTag:
		s.Filter.Tag = orAll(ev.Value)
	case KindSort:
		s.Filter.Sort = sortMode(ev.Value)
	case KindClear:
		s.Filter = models.DefaultFilterState()
	case KindExpand:
		if s.ExpandedID == ev.ProjectID {
			s.ExpandedID = ""
		} else {
			s.ExpandedID = ev.ProjectID
		}
	case KindDetails:
		s.ModalID = ev.ProjectID
	case KindCloseModal:
		s.ModalID = ""
	case KindKey:
		if ev.Value == KeyEscape {
			s.ModalID = ""
		}
	}
	return s
}

func orAll(v string) string {
	if v == "" {
		return models.FilterAll
	}
	return v
}

func sortMode(v string) string {
	switch v {
	case models.SortRecent, models.SortName:
		return v
	}
	return models.SortStatus
}
