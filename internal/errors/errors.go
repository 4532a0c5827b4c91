// Package errors provides the domain error taxonomy for the catalog.
//
// Usage:
//
//	// In the store - return typed errors
//	if !known {
//	    return errors.UnknownActivityf("Unknown activity: %s", name)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrUnknownActivity) {
//	    ...
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeInvalidStars:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes, one per rule the catalog enforces.
const (
	CodeEmptyInput        Code = "EMPTY_INPUT"
	CodeDuplicateCategory Code = "DUPLICATE_CATEGORY"
	CodeUnknownActivity   Code = "UNKNOWN_ACTIVITY"
	CodeUnknownCategory   Code = "UNKNOWN_CATEGORY"
	CodeCategoryNotLinked Code = "CATEGORY_NOT_LINKED"
	CodeDuplicateProduct  Code = "DUPLICATE_PRODUCT"
	CodeInvalidStars      Code = "INVALID_STARS"
	CodeUnknownProduct    Code = "UNKNOWN_PRODUCT"
	CodeDuplicateRating   Code = "DUPLICATE_RATING"
	CodeInvalidName       Code = "INVALID_NAME"
	CodeInternal          Code = "INTERNAL"
)

// ExitCode returns the process exit status a CLI should use for this code.
func (c Code) ExitCode() int {
	switch c {
	case CodeEmptyInput, CodeInvalidStars, CodeInvalidName:
		return 2
	case CodeUnknownActivity, CodeUnknownCategory, CodeUnknownProduct:
		return 3
	case CodeDuplicateCategory, CodeDuplicateProduct, CodeDuplicateRating, CodeCategoryNotLinked:
		return 4
	default:
		return 1
	}
}

// IsRuleViolation reports whether the code describes a rejected write
// rather than an internal failure.
func (c Code) IsRuleViolation() bool {
	return c != CodeInternal && c != ""
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrEmptyInput        = &Error{Code: CodeEmptyInput, Message: "No activities provided"}
	ErrDuplicateCategory = &Error{Code: CodeDuplicateCategory, Message: "Category already exists"}
	ErrUnknownActivity   = &Error{Code: CodeUnknownActivity, Message: "Unknown activity"}
	ErrUnknownCategory   = &Error{Code: CodeUnknownCategory, Message: "Unknown category"}
	ErrCategoryNotLinked = &Error{Code: CodeCategoryNotLinked, Message: "Category not linked to activity"}
	ErrDuplicateProduct  = &Error{Code: CodeDuplicateProduct, Message: "Product already exists"}
	ErrInvalidStars      = &Error{Code: CodeInvalidStars, Message: "Invalid number of stars"}
	ErrUnknownProduct    = &Error{Code: CodeUnknownProduct, Message: "Product does not exist"}
	ErrDuplicateRating   = &Error{Code: CodeDuplicateRating, Message: "User already rated this product"}
	ErrInvalidName       = &Error{Code: CodeInvalidName, Message: "Name contains a NUL byte"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// EmptyInput creates an empty input error.
func EmptyInput(msg string) *Error {
	return &Error{Code: CodeEmptyInput, Message: msg}
}

// EmptyInputWithDetails creates an empty input error with field details.
func EmptyInputWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeEmptyInput, Message: msg, Details: details}
}

// UnknownActivityf creates an unknown activity error with formatted message.
func UnknownActivityf(format string, args ...any) *Error {
	return &Error{Code: CodeUnknownActivity, Message: fmt.Sprintf(format, args...)}
}

// InvalidNamef creates an invalid name error with formatted message.
func InvalidNamef(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidName, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// CodeOf extracts the domain code from err, or CodeInternal when err is not
// a domain error. A nil error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}
