package task

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the repository.
var (
	// ErrNotFound is returned when no task exists for the given id.
	ErrNotFound = errors.New("task not found")

	// ErrConflict is returned when a conditional write loses against a
	// concurrent modification of the same record.
	ErrConflict = errors.New("task modified concurrently")
)

// ErrorKind classifies a service failure.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindUnexpected      ErrorKind = "unexpected"
)

// ServiceError is the structured failure carried inside service replies.
// Errors returned from NATS request-reply handlers lose their type on the
// wire, so domain failures travel in the reply payload instead and are
// rehydrated by the adapter.
type ServiceError struct {
	Kind   ErrorKind           `json:"kind"`
	Detail string              `json:"detail"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func invalidArgument(detail string) *ServiceError {
	return &ServiceError{Kind: KindInvalidArgument, Detail: detail}
}

func validationFailed(fields map[string][]string) *ServiceError {
	return &ServiceError{
		Kind:   KindInvalidArgument,
		Detail: "One or more validation errors occurred",
		Fields: fields,
	}
}

func notFound(id uint) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Detail: fmt.Sprintf("Task with ID %d was not found", id)}
}

func conflict(id uint) *ServiceError {
	return &ServiceError{Kind: KindConflict, Detail: fmt.Sprintf("Task with ID %d was modified by another request", id)}
}

func unexpected() *ServiceError {
	return &ServiceError{Kind: KindUnexpected, Detail: "An unexpected error occurred"}
}
