package domain

import (
	"github.com/google/uuid"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TodoFilter is the open set of optional list criteria. A nil field means the
// criterion was not supplied and must not contribute a predicate.
type TodoFilter struct {
	Completed  *bool
	CategoryID *uuid.UUID
	Priority   *int
	Tag        *string
	Search     *string
	Overdue    *bool

	Page    *int
	PerPage *int
}

// Normalize validates the supplied criteria and resolves pagination to
// concrete values. Explicit non-positive pagination is a caller error,
// absent pagination falls back to defaults and per_page is capped.
func (f *TodoFilter) Normalize() (page int, perPage int, err error) {
	page = DefaultPage
	perPage = DefaultPerPage

	if f.Page != nil {
		if *f.Page < 1 {
			return 0, 0, ErrInvalidPage
		}
		page = *f.Page
	}

	if f.PerPage != nil {
		if *f.PerPage < 1 {
			return 0, 0, ErrInvalidPerPage
		}
		perPage = min(*f.PerPage, MaxPerPage)
	}

	if f.Priority != nil && !ValidPriority(*f.Priority) {
		return 0, 0, ErrInvalidPriority
	}

	return page, perPage, nil
}
