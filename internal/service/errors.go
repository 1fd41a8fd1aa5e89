package service

import "errors"

// Kind classifies a failure so each transport can map it to its own
// status codes.
type Kind int

const (
	// KindInternal is anything the caller could not have caused, e.g. a
	// storage failure. Its message is never shown to clients verbatim.
	KindInternal Kind = iota
	// KindInvalidArgument means a request failed validation.
	KindInvalidArgument
	// KindNotFound means get/update referenced an id that does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}

// Error is the failure type returned by every Students operation.
// Message is safe to show to the caller; Err holds the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func invalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf reports the Kind of err. Errors that did not come from this
// package are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsInvalidArgument reports whether err is a validation failure.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsNotFound reports whether err is a missing-record failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Message returns the caller-facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
