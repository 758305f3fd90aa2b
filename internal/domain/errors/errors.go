package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConflict         = errors.New("resource already exists")
	ErrStorageFailure   = errors.New("storage failure")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FromDomain maps a domain error onto an AppError with the matching HTTP
// status. NotFound and PermissionDenied both render as 404 on resource paths
// so unauthorized callers cannot distinguish "not found" from "not yours";
// the precise kind stays available via errors.Is on the wrapped error.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, "not_found", "resource not found", err)
	case errors.Is(err, ErrPermissionDenied):
		return NewAppError(http.StatusNotFound, "not_found", "resource not found", err)
	case errors.Is(err, ErrInvalidArgument):
		return NewAppError(http.StatusBadRequest, "invalid_argument", "invalid argument", err)
	case errors.Is(err, ErrConflict):
		return NewAppError(http.StatusConflict, "conflict", "resource already exists", err)
	default:
		return NewAppError(http.StatusInternalServerError, "internal", "internal server error", err)
	}
}
