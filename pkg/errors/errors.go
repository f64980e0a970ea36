package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the closed set of failures the API reports, each carrying its HTTP status.
type Error struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Fields  []string `json:"fields,omitempty"`
	Err     error    `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so clones and wrapped copies compare equal to the predefined variants.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "authentication required")
	ErrTokenInvalid       = New("TOKEN_INVALID", http.StatusUnauthorized, "invalid or expired token")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "admin access required")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrDuplicateEmail     = New("DUPLICATE_EMAIL", http.StatusBadRequest, "Email already subscribed")
	ErrInvalidUpload      = New("INVALID_UPLOAD", http.StatusBadRequest, "only image uploads are allowed")
	ErrFileTooLarge       = New("FILE_TOO_LARGE", http.StatusBadRequest, "file exceeds the maximum upload size")
	ErrStoreUnavailable   = New("STORE_UNAVAILABLE", http.StatusInternalServerError, "data store unavailable")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	if err.Fields != nil {
		clone.Fields = append([]string(nil), err.Fields...)
	}
	return &clone
}

// WithFields returns a copy of err listing the offending request fields.
func WithFields(err *Error, message string, fields ...string) *Error {
	clone := Clone(err, message)
	if clone == nil {
		return nil
	}
	clone.Fields = append([]string(nil), fields...)
	return clone
}
