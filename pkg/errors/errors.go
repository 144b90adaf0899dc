package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the "code" field of error responses.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeConflict         = "CONFLICT"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodeRateLimited      = "RATE_LIMITED"
	CodeTimeout          = "TIMEOUT"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is what handlers and middleware send back to the client.
// Message becomes "detail"; Err is logged, never rendered.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NotFoundWithID reports a missing booking; the id goes into the details.
func NotFoundWithID(resource, id string) *AppError {
	err := newError(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
	err.Details = map[string]any{"resource": resource, "id": id}
	return err
}

// Validation reports malformed client input. It is a 400 rather than a 422 so
// existing clients keep seeing the status codes they were built against.
func Validation(message string, details map[string]any) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, message)
	err.Details = details
	return err
}

func InvalidInput(message string) *AppError {
	return newError(CodeInvalidInput, http.StatusBadRequest, message)
}

// Conflict reports an occupied slot. Rendered as 400, same as validation,
// and told apart by Code.
func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusBadRequest, message)
}

func UnsupportedMediaType(message string) *AppError {
	return newError(CodeUnsupportedMedia, http.StatusUnsupportedMediaType, message)
}

func RateLimited() *AppError {
	return newError(CodeRateLimited, http.StatusTooManyRequests, "Rate limit exceeded")
}

func Timeout(message string) *AppError {
	return newError(CodeTimeout, http.StatusGatewayTimeout, message)
}

func Internal(message string, err error) *AppError {
	appErr := newError(CodeInternal, http.StatusInternalServerError, message)
	appErr.Err = err
	return appErr
}

// AsAppError unwraps err to an AppError, treating anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
