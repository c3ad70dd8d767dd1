// Package domainerrors defines coded errors shared between services and the
// HTTP layer. Services attach a Code describing the business outcome; the
// transport layer maps codes to status codes without inspecting error text.
package domainerrors

import (
	"errors"
	"strings"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	CodeBadRequest Code = "bad_request"
	CodeValidation Code = "validation_failed"
	CodeConflict   Code = "conflict"
	CodeNotFound   Code = "not_found"
	CodeInternal   Code = "internal_error"
)

// Error is a coded domain error. Validation errors additionally carry the
// individual rule violations so callers can report them one by one.
type Error struct {
	Code       Code
	Message    string
	Violations []string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewValidation creates a CodeValidation error from rule violations. The
// message joins all violations so the error is readable when logged whole.
func NewValidation(violations []string) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    strings.Join(violations, ", "),
		Violations: violations,
	}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or any error in its chain) is a domain error
// with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Violations extracts the violation list from a validation error. Returns nil
// for non-domain errors and for codes that do not carry violations.
func Violations(err error) []string {
	var de *Error
	if errors.As(err, &de) {
		return de.Violations
	}
	return nil
}
