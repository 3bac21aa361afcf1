package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty tag name, rename to the current name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would make two distinct resources
// share an identity, e.g. renaming a tag to a name another tag already has.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")
