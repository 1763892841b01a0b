package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error kinds. Per-file errors carry exactly one of these in their chain so
// the batch runner can classify the outcome with errors.Is.
var (
	ErrTextExtraction     = errors.New("text extraction failed")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendFailure     = errors.New("backend failure")
	ErrNormalization      = errors.New("date normalization failed")
	ErrNameCollision      = errors.New("target name already exists")
	ErrRename             = errors.New("rename failed")
	ErrInvalidInput       = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Kind reports the stable name of the error kind in err's chain, for
// ledger rows and batch reports.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTextExtraction):
		return "TextExtractionFailed"
	case errors.Is(err, ErrBackendUnavailable):
		return "BackendUnavailable"
	case errors.Is(err, ErrBackendFailure):
		return "BackendFailure"
	case errors.Is(err, ErrNormalization):
		return "NormalizationFailed"
	case errors.Is(err, ErrNameCollision):
		return "NameCollision"
	case errors.Is(err, ErrRename):
		return "RenameFailed"
	default:
		return "Internal"
	}
}
