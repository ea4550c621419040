package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBugNotFound        = errors.New("bug not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("record was modified concurrently")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrIDMismatch         = errors.New("path and body ids do not match")

	// ErrLastAdministrator guards the standing invariant that at least one
	// Administrator account must exist at all times.
	ErrLastAdministrator = errors.New("cannot delete the last Administrator account; at least one Administrator must remain in the system")

	// ErrEmployeeReferenced refuses deletes that would orphan bug references
	// (referential restrict, not cascade).
	ErrEmployeeReferenced = errors.New("employee is referenced by existing bugs and cannot be deleted")
)

// DeniedError is an authorization denial carrying a human-readable reason.
// It unwraps to ErrForbidden so callers can match the whole class.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Unwrap() error { return ErrForbidden }

// Denied builds a DeniedError with the given reason.
func Denied(reason string) error {
	return &DeniedError{Reason: reason}
}
