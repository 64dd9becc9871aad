// Package errors defines the coded errors umlpad reports to users.
//
// Every failure that crosses a package boundary toward the CLI or the HTTP
// API is an [*Error] carrying a [Code]. The HTTP layer picks a status from
// the code and shows [UserMessage] only for client errors; everything else
// is logged and replaced by a generic message.
//
//	if err := errors.ValidateSource(code); err != nil {
//	    return err // INVALID_INPUT: No code provided
//	}
//	token, err := plantuml.Encode(code)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeInternal, err, "Failed to generate diagram")
//	}
//
// Callers import the standard library package as stderrors when they need
// both.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Bad caller input. [IsClientError] reports true for these.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidDraftID Code = "INVALID_DRAFT_ID"
	ErrCodeInvalidToken   Code = "INVALID_TOKEN"

	ErrCodeNotFound Code = "NOT_FOUND"

	// The rendering service could not be reached, or refused the diagram.
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is an error with a code, a message safe to show to users and an
// optional cause that is only logged.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap returns the cause so the standard errors.Is and errors.As see it.
func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error, or err.Error()
// for errors without a code.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by bad caller input.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidDraftID, ErrCodeInvalidToken:
		return true
	}
	return false
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
