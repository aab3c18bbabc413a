package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownKind        = errors.New("unknown principal kind")

	// Role Gate outcomes. Each maps to a distinct HTTP status.
	ErrTokenMissing  = errors.New("token not provided")
	ErrTokenInvalid  = errors.New("token could not be decoded")
	ErrPrincipalGone = errors.New("principal not found")
	ErrRoleDenied    = errors.New("unauthorized role")
)

// ValidationError reports malformed or missing input. Its message is always
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that a natural key is already taken by another
// principal of the same kind.
type ConflictError struct {
	Kind Kind
	Key  NaturalKey
}

func (e *ConflictError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s already exists", e.Kind)
	}
	return fmt.Sprintf("%s already exists with this %s", e.Kind, e.Key)
}

// IsConflict reports whether err carries a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
