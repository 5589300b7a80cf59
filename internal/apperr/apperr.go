// Package apperr holds the error kinds shared by the core packages.
// Package-level sentinels wrap one of these with %w so callers can branch
// on the kind with errors.Is without knowing every sentinel.
package apperr

import "errors"

var (
	// ErrValidation marks bad caller input. No state was mutated.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a request that clashes with current state.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrExternal marks a failing collaborator (HTTP API, model engine).
	ErrExternal = errors.New("external failure")
)

// IsUserFacing reports whether err should be shown to the user as a private
// notice rather than logged as a failure.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}
