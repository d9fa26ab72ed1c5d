package core

import "errors"

// Error codes surfaced to API callers.
const (
	ErrCodeNotFound   = "not_found"
	ErrCodeValidation = "validation_failed"
	ErrCodeBadRequest = "bad_request"
	ErrCodeInternal   = "internal"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrInternal   = errors.New("internal error")
)

// Error wraps a code and human-readable message.
// It unwraps to one of the sentinel errors above so callers can use errors.Is.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a not-found error with the given message.
func NotFound(msg string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: msg, Err: ErrNotFound}
}

// Validation builds a validation error with the given message.
func Validation(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg, Err: ErrValidation}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(cause error) *Error {
	return &Error{Code: ErrCodeInternal, Message: "internal server error", Err: errors.Join(ErrInternal, cause)}
}

// CodeOf returns the API code for err, defaulting to ErrCodeInternal.
func CodeOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternal
}
