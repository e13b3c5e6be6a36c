// Package apperror defines the failure kinds surfaced to inventory users.
//
// Duplicate barcodes and missing products are not errors: the repository
// reports them as a false result. Only two things are: input that fails
// validation before the store is touched, and a store that cannot be reached.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its code.
var (
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Error is a coded failure with a user-facing message.
type Error struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorageUnavailable) match without exposing the cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == CodeValidation
	case ErrStorageUnavailable:
		return e.Code == CodeStorageUnavailable
	}
	return false
}

// WithField records a per-field reason.
func (e *Error) WithField(field, reason string) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
	return e
}

// NewValidation creates a validation failure (422).
func NewValidation(message string) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewStorageUnavailable wraps a store fault (503).
func NewStorageUnavailable(op string, err error) *Error {
	return &Error{
		Code:       CodeStorageUnavailable,
		Message:    fmt.Sprintf("storage unavailable during %s", op),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps any error to a status code; unknown errors are 500.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
