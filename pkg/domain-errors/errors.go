// Package domainerrors defines the error taxonomy shared by every service in
// the repo. Each error carries a stable Code the transport layer can map to a
// status without string matching; the message explains the specific rule that
// was violated.
//
// Stores do not use this package: they return pkg/platform/sentinel errors
// (factual states) which services translate into coded errors here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure kind. The string value is what
// the HTTP layer renders in the "error" field.
type Code string

const (
	// Generic codes.
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"

	// Registration lifecycle codes.
	CodePastDate              Code = "past_date"
	CodeUnknownMeal           Code = "unknown_meal"
	CodeDuplicateRegistration Code = "duplicate_registration"
	CodeDeadlinePassed        Code = "deadline_passed"
	CodeSameDayCancel         Code = "same_day_cancel_disallowed"
)

// Error is a coded domain error. Use New/Wrap to construct.
type Error struct {
	code    Code
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the stable failure kind.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the human-readable detail without the code prefix.
func (e *Error) Message() string {
	return e.message
}

// New creates a coded error with a message.
func New(code Code, message string) error {
	return &Error{code: code, message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As inspection.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{code: code, message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so unexpected failures never masquerade as business rules.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// MessageOf extracts the human-readable detail, or an empty string for
// uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.message
	}
	return ""
}
