package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/example/specmentor/internal/models"
)

// ErrorKind tags a workflow error for transport-layer mapping.
type ErrorKind string

// Workflow error kinds.
const (
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindInsufficientPerms    ErrorKind = "INSUFFICIENT_PERMISSIONS"
	KindTransitionNotAllowed ErrorKind = "TRANSITION_NOT_ALLOWED"
	KindVersionConflict      ErrorKind = "VERSION_CONFLICT"
)

// WorkflowError is a typed error carrying a machine-readable code, a
// suggested HTTP-style status class, and the phase involved. The
// mapping to a transport status is a pure function of the kind.
type WorkflowError struct {
	Kind    ErrorKind
	Code    string
	Status  int
	Phase   models.Phase
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

// NewNotFound builds a NOT_FOUND error for a missing resource.
func NewNotFound(resource, id string) *WorkflowError {
	return &WorkflowError{
		Kind:    KindNotFound,
		Code:    string(KindNotFound),
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// NewPermissionDenied builds an INSUFFICIENT_PERMISSIONS error tagged
// with the phase the operation targeted.
func NewPermissionDenied(phase models.Phase, reason string) *WorkflowError {
	return &WorkflowError{
		Kind:    KindInsufficientPerms,
		Code:    string(KindInsufficientPerms),
		Status:  http.StatusForbidden,
		Phase:   phase,
		Message: reason,
	}
}

// NewTransitionNotAllowed builds a TRANSITION_NOT_ALLOWED error with a
// human-readable reason for the blocking condition.
func NewTransitionNotAllowed(phase models.Phase, reason string) *WorkflowError {
	return &WorkflowError{
		Kind:    KindTransitionNotAllowed,
		Code:    string(KindTransitionNotAllowed),
		Status:  http.StatusBadRequest,
		Phase:   phase,
		Message: reason,
	}
}

// NewVersionConflict builds a VERSION_CONFLICT error for a stale
// document update.
func NewVersionConflict(phase models.Phase, got, want int) *WorkflowError {
	return &WorkflowError{
		Kind:    KindVersionConflict,
		Code:    string(KindVersionConflict),
		Status:  http.StatusConflict,
		Phase:   phase,
		Message: fmt.Sprintf("stale document version %d, current version is %d", got, want),
	}
}

// IsKind reports whether err is a WorkflowError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var we *WorkflowError
	return errors.As(err, &we) && we.Kind == kind
}
