package services

import (
	"errors"
	"fmt"

	"github.com/mrfarhan786/MVOTE/validation"
)

// Sentinel errors returned by the services. Handlers translate these to HTTP
// statuses; anything else is reported as a generic internal failure so storage
// details never reach the client.
var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
	ErrSessionNotActive   = errors.New("session_not_active")
	ErrDuplicateVote      = errors.New("already_voted")
)

// ValidationError reports per-field violations collected before any mutation.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string]string(e.Violations))
}

// Validate returns a *ValidationError when v is non-empty, nil otherwise.
func Validate(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
