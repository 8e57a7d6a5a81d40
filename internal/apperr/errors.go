package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes application errors so handlers can translate them into
// HTTP responses without inspecting message text.
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindLimitExceeded  Kind = "limit_exceeded"
	KindDuplicateEmail Kind = "duplicate_email"
	KindNotFound       Kind = "not_found"
	KindUnexpected     Kind = "unexpected"
)

// HTTPStatus maps an error kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindLimitExceeded, KindDuplicateEmail:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an application error carrying a kind and a caller-facing message.
// For KindUnexpected the message is generic and the underlying cause is kept
// in Err for logging only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid returns an InvalidInput error with the given message.
func Invalid(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// LimitExceeded returns a LimitExceeded error with the given message.
func LimitExceeded(message string) *Error {
	return &Error{Kind: KindLimitExceeded, Message: message}
}

// DuplicateEmail returns a DuplicateEmail error with the given message.
func DuplicateEmail(message string) *Error {
	return &Error{Kind: KindDuplicateEmail, Message: message}
}

// NotFound returns a NotFound error with the given message.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Wrap returns an Unexpected error wrapping a persistence or integration
// failure. The message shown to callers stays generic.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as Unexpected.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindUnexpected, Message: "erro interno", Err: err}
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
