// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every lookup that matched nothing.
var ErrNotFound = errors.New("not found")

// Kind classifies an application error. The set is closed; callers switch on it.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	// KindValidation is a global input failure: empty CSV, too many lines, nothing valid to import,
	// malformed query parameters.
	KindValidation
	// KindNotFound means the resource does not exist for the caller.
	KindNotFound
	// KindNoData means a query matched no sales. Callers treat it as an expected outcome.
	KindNoData
	// KindConflict is reserved for state conflicts.
	KindConflict
	// KindExternalService wraps a failure of the text-generation API.
	KindExternalService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindNoData:
		return "no_data"
	case KindConflict:
		return "conflict"
	case KindExternalService:
		return "external_service"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by the core services.
type Error struct {
	Err     error
	Details any
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a tagged error.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithDetails attaches a payload, such as rejected lines, and returns the same error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Validation creates a KindValidation error.
func Validation(format string, args ...any) *Error {
	return NewError(KindValidation, fmt.Sprintf(format, args...), nil)
}

// NotFound creates a KindNotFound error wrapping ErrNotFound.
func NotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, fmt.Sprintf(format, args...), ErrNotFound)
}

// NoData creates a KindNoData error.
func NoData(format string, args ...any) *Error {
	return NewError(KindNoData, fmt.Sprintf(format, args...), nil)
}

// ExternalService creates a KindExternalService error wrapping the upstream cause.
func ExternalService(message string, err error) *Error {
	return NewError(KindExternalService, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// DetailsOf returns the payload of the first *Error in err's chain.
func DetailsOf(err error) any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
