// Package apperr carries the outcome kind of a failed operation across layer
// boundaries. Repositories and services return (value, error); a non-nil
// error is classified by its Kind, which the HTTP layer maps to a status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindIntegrity:
		return "integrity"
	default:
		return "internal"
	}
}

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind and code, so package-level sentinels can
// be compared with errors.Is even when the message carries an id.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithDetails returns a copy of e carrying details (typically per-field errors).
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Newf returns a copy of the sentinel e with a formatted message.
func (e *Error) Newf(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	return &cp
}

func NotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Integrity(code, format string, args ...any) *Error {
	return &Error{Kind: KindIntegrity, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected store or runtime failure.
func Internal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: fmt.Sprintf(format, args...), Err: err}
}

// Common failures shared by every domain.
var (
	ErrIDMismatch = Validation("ID_MISMATCH", "id in URL does not match id in request body")
	ErrEmptyQuery = Validation("EMPTY_QUERY", "search query must not be empty")
	ErrInvalidID  = Validation("INVALID_ID", "id must be an integer")
)

// FromValidation converts an ozzo-validation result into a copy of sentinel
// whose message lists the failed fields and whose details hold them by name.
func FromValidation(sentinel *Error, err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return sentinel.Newf("%s", fields.Error()).WithDetails(fields)
	}
	return Internal(err, "validation failed")
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps err to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindIntegrity:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
