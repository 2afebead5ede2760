package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Intake errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("file contains no rows")
	ErrParseFailed         = errors.New("failed to parse file")

	// Registry errors
	ErrCapacityExceeded = errors.New("maximum number of files exceeded")
	ErrNotFound         = errors.New("resource not found")
	ErrDatasetNotFound  = fmt.Errorf("%w: dataset", ErrNotFound)

	// Engine errors
	ErrInvalidField = errors.New("invalid field")
	ErrValidation   = errors.New("validation failed")
)

// UnsupportedFileTypeMessage is shown to the user when a file is rejected at intake.
const UnsupportedFileTypeMessage = "Please upload an Excel file (.xlsx or .xls)"

// Error constructors with context
func NewUnsupportedFileTypeError(filename, mimeType string) error {
	return fmt.Errorf("%w: %s (%s): %s", ErrUnsupportedFileType, filename, mimeType, UnsupportedFileTypeMessage)
}

func NewEmptyFileError(filename string) error {
	return fmt.Errorf("%w: %s", ErrEmptyFile, filename)
}

func NewParseError(filename string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrParseFailed, filename, err)
}

func NewCapacityError(existing, incoming, max int) error {
	return fmt.Errorf("%w: %d existing + %d incoming > %d", ErrCapacityExceeded, existing, incoming, max)
}

func NewNotFoundError(resource string, id ID) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidFieldError(field string) error {
	return fmt.Errorf("%w: %q is not a column of the dataset", ErrInvalidField, field)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidField)
}

// IsIntakeError reports whether err rejected an upload batch.
func IsIntakeError(err error) bool {
	return errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrParseFailed) ||
		errors.Is(err, ErrCapacityExceeded)
}
