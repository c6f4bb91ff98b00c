package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error into the taxonomy the workflows act on.
type Kind int

const (
	// KindValidation is a local, pre-network, field-level failure. Always
	// recoverable and never transitions workflow state.
	KindValidation Kind = iota
	// KindSubmission is a network or non-2xx failure during a server round
	// trip. State is rolled back to pre-call; retry is up to the user.
	KindSubmission
	// KindNotFound marks navigation without a valid sale/client reference.
	KindNotFound
	// KindUnauthorized is the forced-logout boundary: the server rejected the
	// session token and the transport tore the session down.
	KindUnauthorized
	// KindInternal covers everything else.
	KindInternal
)

// AppError represents an application error with enough structure for the
// caller to highlight offending fields or offer a retry.
type AppError struct {
	Kind    Kind         `json:"-"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%d field(s))", e.Message, len(e.Fields))
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrNoDraft is returned when a confirmation workflow is entered without a
// sale id to act on.
var ErrNoDraft = &AppError{Kind: KindNotFound, Message: "no draft to act on"}

// NewValidationError creates a validation error carrying every violation so
// callers can surface all of them at once.
func NewValidationError(fields []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewSubmissionError wraps a failed server round trip.
func NewSubmissionError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindSubmission,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a not found error for the named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewUnauthorizedError marks a rejected session token.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsValidation reports whether err is a field-level validation failure.
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

// GetAppError converts an error to AppError if possible, defaulting to an
// internal error otherwise.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Message: err.Error(),
		Err:     err,
	}
}
