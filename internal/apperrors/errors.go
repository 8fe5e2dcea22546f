package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates that the actor lacks the role or department for the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates that no verified identity accompanied the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidTransition indicates that the requested event is not legal from the current status.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrVersionConflict indicates that the supplied version no longer matches the stored one.
// This is the only error kind that implies "re-read and retry".
var ErrVersionConflict = errors.New("version conflict")

// ErrAuditWriteFailed indicates that an audit entry could not be persisted after retrying.
var ErrAuditWriteFailed = errors.New("audit write failed")

// ErrInternal is returned when an unexpected infrastructure failure occurs.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying infrastructure error with an HTTP-ish code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes every 5xx AppError match ErrInternal so callers can classify it.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}
