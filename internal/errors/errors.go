package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"sheetlens/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping its code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{Code: code, Message: appErr.Message, Cause: appErr.Cause}
	}
	return &AppError{Code: code, Message: err.Error(), Cause: err}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeEmptyFile           = "EMPTY_FILE"
	CodeParseFailed         = "PARSE_FAILED"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeInvalidField        = "INVALID_FIELD"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// domainCodes maps domain sentinels to codes, most specific first
var domainCodes = []struct {
	sentinel error
	code     string
}{
	{core.ErrUnsupportedFileType, CodeUnsupportedFileType},
	{core.ErrEmptyFile, CodeEmptyFile},
	{core.ErrParseFailed, CodeParseFailed},
	{core.ErrCapacityExceeded, CodeCapacityExceeded},
	{core.ErrInvalidField, CodeInvalidField},
	{core.ErrValidation, CodeValidationError},
	{core.ErrNotFound, CodeNotFound},
}

// FromDomain converts an error from the domain layer into an AppError.
// Errors that already carry a code are returned as they are.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	for _, dc := range domainCodes {
		if stderrors.Is(err, dc.sentinel) {
			message := err.Error()
			if dc.code == CodeUnsupportedFileType {
				message = core.UnsupportedFileTypeMessage
			}
			return &AppError{Code: dc.code, Message: message, Cause: err}
		}
	}
	return &AppError{Code: CodeInternalError, Message: "internal error", Cause: err}
}

// HTTPStatus returns the HTTP status a code is reported with
func HTTPStatus(code string) int {
	switch code {
	case CodeUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case CodeEmptyFile, CodeParseFailed, CodeInvalidField, CodeValidationError:
		return http.StatusUnprocessableEntity
	case CodeCapacityExceeded:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
