// Package server provides the HTTP REST API for the content studio.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sooperboring/content-studio/internal/auth"
	"github.com/sooperboring/content-studio/internal/draft"
	"github.com/sooperboring/content-studio/internal/remote"
	"github.com/sooperboring/content-studio/internal/validation"
)

// ErrUnknownType indicates an unregistered content type name
type ErrUnknownType struct {
	Name string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown content type: %s", e.Name)
}

// ErrSessionNotFound indicates an unknown or expired editing session
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("editing session not found: %s", e.ID)
}

// ErrUnsavedChanges indicates an attempt to close a dirty session without
// choosing save or discard
type ErrUnsavedChanges struct{}

func (e *ErrUnsavedChanges) Error() string {
	return "session has unsaved changes; pass save=true or discard=true"
}

// ErrUnauthorized indicates a missing or invalid session token
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "authentication required"
}

// ErrForbidden indicates an authenticated account without dashboard access
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "dashboard access denied"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *validation.ValidationError
		lastEntry     *draft.ErrLastEntry
		entryMissing  *draft.ErrEntryNotFound
		unknownType   *ErrUnknownType
		sessionGone   *ErrSessionNotFound
		unsaved       *ErrUnsavedChanges
		unauthorized  *ErrUnauthorized
		forbidden     *ErrForbidden
	)
	switch {
	case errors.Is(err, remote.ErrNotFound), errors.As(err, &sessionGone), errors.As(err, &entryMissing):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailTaken), errors.As(err, &unsaved):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrSessionExpired), errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validationErr), errors.As(err, &lastEntry), errors.As(err, &unknownType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
