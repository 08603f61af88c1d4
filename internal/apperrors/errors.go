// Package apperrors classifies engine failures so callers can decide how
// to surface them: store errors abort and map to 5xx, validation errors
// map to 4xx. Extraction failures are swallowed at the source and never
// reach this package.
package apperrors

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	KindStore      Kind = "store"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
)

type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.cause.Error() }

func (e *Error) Unwrap() error { return e.cause }

// Store wraps a ledger-store failure.
func Store(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, cause: errors.Wrap(err, msg)}
}

// Storef wraps a ledger-store failure with a formatted message.
func Storef(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStore, cause: errors.Wrapf(err, format, args...)}
}

// Validation reports a caller mistake (missing or unknown identifier,
// malformed input).
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, cause: errors.Errorf(format, args...)}
}

// NotFound reports a missing record.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, cause: errors.Errorf(format, args...)}
}

// Conflict reports an illegal state transition, such as accepting a match
// that is no longer suggested.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, cause: errors.Errorf(format, args...)}
}

// KindOf extracts the classification of err, defaulting to KindStore for
// unclassified failures so they surface as server-side errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
