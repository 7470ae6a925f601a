package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FilterAll disables a status, tag or category clause.
const FilterAll = "all"

// Sort modes.
const (
	SortStatus = "status"
	SortRecent = "recent"
	SortName   = "name"
)

// FilterState is the current search/filter/sort selection. The JSON shape is
// the persisted form.
type FilterState struct {
	Query    string `json:"q"`
	Status   string `json:"status"`
	Tag      string `json:"tag"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// DefaultFilterState returns the state "Clear filters" resets to.
func DefaultFilterState() FilterState {
	return FilterState{
		Query:    "",
		Status:   FilterAll,
		Tag:      FilterAll,
		Category: FilterAll,
		Sort:     SortStatus,
	}
}

// Validate checks that a (typically restored) state is usable as-is.
func (f FilterState) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Status, validation.Required),
		validation.Field(&f.Tag, validation.Required),
		validation.Field(&f.Category, validation.Required),
		validation.Field(&f.Sort, validation.Required, validation.In(SortStatus, SortRecent, SortName)),
	)
}

// IsDefault reports whether no filter clause is active and the default sort applies.
func (f FilterState) IsDefault() bool {
	return f == DefaultFilterState()
}
