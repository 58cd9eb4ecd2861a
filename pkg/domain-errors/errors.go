// Package domainerrors provides coded errors for the certificate registry.
//
// Every rejected operation carries exactly one Code from the taxonomy below.
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// those into coded errors here. Transport layers map codes to HTTP statuses
// without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a failure class.
type Code string

const (
	// Registry precondition failures.
	CodeUnauthorized      Code = "unauthorized"
	CodeNotFound          Code = "not_found"
	CodeInvalidArgument   Code = "invalid_argument"
	CodeAlreadyVerified   Code = "already_verified"
	CodeAlreadyRevoked    Code = "already_revoked"
	CodeAlreadyAuthorized Code = "already_authorized"
	CodeNotAuthorized     Code = "not_authorized"
	CodeTransfersDisabled Code = "transfers_disabled"
	CodeNotTransferable   Code = "certificate_not_transferable"

	// Ambient failures outside the registry taxonomy.
	CodeUnauthenticated Code = "unauthenticated"
	CodeBadRequest      Code = "bad_request"
	CodeInternal        Code = "internal"
)

// Error is a coded domain error. The cause, when present, is preserved for
// errors.Is/As chains but never exposed in transport responses.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
	}
	return false
}

// Is is a readability alias for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal when the error carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
