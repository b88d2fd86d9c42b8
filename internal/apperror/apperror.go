// Package apperror defines the error kinds surfaced to API callers.
package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable machine-readable identifier of an error class.
type Kind string

const (
	KindInvalidCoordinates Kind = "invalid_coordinates"
	KindAlreadyCheckedIn   Kind = "already_checked_in"
	KindNoOpenCheckIn      Kind = "no_open_check_in"
	KindEmployeeNotFound   Kind = "employee_not_found"
	KindForbidden          Kind = "forbidden"
	KindUnauthenticated    Kind = "unauthenticated"
	KindNotFound           Kind = "not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindUnavailable        Kind = "unavailable"
	KindInternal           Kind = "internal"
)

// Error carries a Kind, a message safe to show to callers, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNoOpenCheckIn)
// holds for every wrapped no-open-check-in failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrInvalidCoordinates = &Error{Kind: KindInvalidCoordinates, Message: "invalid coordinates"}
	ErrAlreadyCheckedIn   = &Error{Kind: KindAlreadyCheckedIn, Message: "already checked in today"}
	ErrNoOpenCheckIn      = &Error{Kind: KindNoOpenCheckIn, Message: "no open check-in found for today"}
	ErrEmployeeNotFound   = &Error{Kind: KindEmployeeNotFound, Message: "employee record not found"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "only administrators can perform this operation"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput, Message: "invalid request data"}
	ErrUnavailable        = &Error{Kind: KindUnavailable, Message: "storage temporarily unavailable"}
)

// Wrap builds an error of the given kind with a specific message and cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Unavailable marks a persistence connectivity failure, the only kind a caller may retry.
func Unavailable(err error) *Error {
	return Wrap(KindUnavailable, ErrUnavailable.Message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to the status code the API answers with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidCoordinates, KindInvalidInput, KindNoOpenCheckIn:
		return http.StatusBadRequest
	case KindAlreadyCheckedIn:
		return http.StatusConflict
	case KindEmployeeNotFound, KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
