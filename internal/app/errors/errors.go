// Package errors defines the domain error taxonomy. Every failure is tagged
// with its Kind at the point of origin so that user-facing messages and HTTP
// statuses are derived by classification, never by matching message text.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind string

const (
	// KindValidation covers malformed uploads rejected before any network call.
	KindValidation Kind = "validation"
	// KindConfig covers missing server-side configuration such as the provider credential.
	KindConfig Kind = "config"
	// KindUpstream covers failures of the transcription provider itself.
	KindUpstream Kind = "upstream"
	// KindTimeout covers jobs abandoned at the polling deadline.
	KindTimeout Kind = "timeout"
	// KindPersistence covers saves that failed on every backend.
	KindPersistence Kind = "persistence"
	// KindInternal is the fallback for untagged errors.
	KindInternal Kind = "internal"
)

// Error is a kind-tagged domain error.
type Error struct {
	kind       Kind
	message    string
	statusCode int // upstream HTTP status, when the provider answered at all
	cause      error
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a formatted error of the given kind.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and context to an underlying error.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: message, cause: err}
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Validationf creates a formatted validation error.
func Validationf(format string, args ...interface{}) *Error {
	return Newf(KindValidation, format, args...)
}

// Config creates a configuration error.
func Config(message string) *Error {
	return New(KindConfig, message)
}

// Upstream creates an error for a provider request that returned a
// non-success status. The status is kept for classification.
func Upstream(operation string, statusCode int, body string) *Error {
	return &Error{
		kind:       KindUpstream,
		message:    fmt.Sprintf("%s failed: %d - %s", operation, statusCode, body),
		statusCode: statusCode,
	}
}

// UpstreamJob creates an error for a job the provider itself reported as failed.
func UpstreamJob(providerMessage string) *Error {
	return Newf(KindUpstream, "transcription failed: %s", providerMessage)
}

// Timeout creates an error for a polling loop that hit its deadline.
func Timeout(operation string, after string) *Error {
	return Newf(KindTimeout, "%s timed out after %s", operation, after)
}

// Persistence wraps a save that failed on every backend.
func Persistence(err error) error {
	return Wrap(err, KindPersistence, "failed to save transcription")
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// StatusCode returns the upstream HTTP status, or 0 when not applicable.
func (e *Error) StatusCode() int {
	return e.statusCode
}

// KindOf returns the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UserMessage derives the phrase shown to the caller from the error's kind.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Transcription failed. Please try again."
	}

	switch e.kind {
	case KindValidation:
		return e.message
	case KindConfig:
		return "Server configuration error: Speech-to-Text service is not configured."
	case KindTimeout:
		return "Audio processing took too long. Please try a shorter audio file (under 2 minutes)."
	case KindUpstream:
		if e.statusCode == 401 || e.statusCode == 403 {
			return "Speech-to-Text service is temporarily unavailable. Please try again later."
		}
		return e.message
	default:
		return "Transcription failed. Please try again."
	}
}
