package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidEvent       = errors.New("invalid event")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
