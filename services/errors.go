package services

import "errors"

// Kind classifies a service failure for transport-layer mapping. The
// taxonomy is deliberately small: controllers translate each kind to one
// HTTP status and never inspect error text.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindUnauthenticated
	KindPermissionDenied
	KindNotFound
	KindFailedPrecondition
)

// Error is a service failure with a stable kind and a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func permissionDenied(msg string) error {
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func failedPrecondition(msg string) error {
	return &Error{Kind: KindFailedPrecondition, Message: msg}
}

// KindOf extracts the taxonomy kind from an error chain. Anything that is
// not a service Error is an unexpected infrastructure failure and maps to
// KindInternal so the transport layer never leaks its detail.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
