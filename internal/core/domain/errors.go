package domain

import "errors"

// Not found within the caller's ownership scope.
var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagLinkNotFound  = errors.New("tag assignment not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Uniqueness conflicts.
var (
	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrTagNameTaken      = errors.New("tag name already exists")
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

// Caller errors.
var (
	ErrInvalidPage        = errors.New("page must be positive")
	ErrInvalidPerPage     = errors.New("per_page must be positive")
	ErrInvalidPriority    = errors.New("priority must be between 0 and 4")
	ErrEmptyBatch         = errors.New("no todo ids provided")
	ErrBatchTooLarge      = errors.New("too many todos (max 100)")
	ErrEmptyPatch         = errors.New("no fields to update")
	ErrInvalidCategory    = errors.New("category does not exist for this user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// ErrCacheMiss signals a key that is absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

// IsValidation reports whether err belongs to the caller-error kind.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidPage, ErrInvalidPerPage, ErrInvalidPriority,
		ErrEmptyBatch, ErrBatchTooLarge, ErrEmptyPatch, ErrInvalidCategory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err belongs to the not-found kind.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrTodoNotFound, ErrCategoryNotFound, ErrTagNotFound,
		ErrTagLinkNotFound, ErrUserNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsConflict reports whether err belongs to the uniqueness-conflict kind.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrCategoryNameTaken, ErrTagNameTaken, ErrUserAlreadyExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
