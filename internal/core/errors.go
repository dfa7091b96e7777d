package core

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the closed taxonomy the rest of the
// system dispatches on.
type Kind int

const (
	// KindNotFound means an entity referred to by id does not exist.
	KindNotFound Kind = iota
	// KindValidation means a domain precondition failed.
	KindValidation
	// KindIO means an underlying filesystem operation failed.
	KindIO
	// KindSerialization means the on-disk document could not be parsed
	// or produced.
	KindSerialization
	// KindConflict means the file was modified by another instance
	// between our last read and our save. Conflict errors are retryable.
	KindConflict
	// KindInternal means an invariant was violated. Treated as fatal.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindSerialization:
		return "serialization"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type surfaced across package boundaries.
type Error struct {
	Kind      Kind
	Msg       string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// IOErr wraps a filesystem error.
func IOErr(msg string, err error) error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}

// SerializationErr wraps an encode/decode error.
func SerializationErr(msg string, err error) error {
	return &Error{Kind: KindSerialization, Msg: msg, Err: err}
}

// Conflictf builds a retryable KindConflict error.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...), Retryable: true}
}

// Internalf builds a KindInternal error.
func Internalf(format string, args ...any) error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or KindInternal for errors
// that did not originate in this module.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsRetryable reports whether the operation that produced err may be
// retried (currently only conflicts).
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
