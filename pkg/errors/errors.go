// Package errors carries the error codes shared by every coalition package.
//
// Each failure gets a [Code] so callers can branch on the kind of problem
// without matching message text:
//
//	b := manipulate.New(candidates, rng, logger)
//	res, err := b.Build(order, p, k)
//	if errors.Is(err, errors.ErrCodeInvalidCoalitionSize) {
//	    // k is larger than the profile
//	}
//
// An elimination order that cannot be forced is not an error. The builder
// reports it as res.Feasible == false.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Bad input
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidBallot        Code = "INVALID_BALLOT"
	ErrCodeInvalidCandidate     Code = "INVALID_CANDIDATE"
	ErrCodeInvalidOrder         Code = "INVALID_ORDER"
	ErrCodeInvalidCoalitionSize Code = "INVALID_COALITION_SIZE"
	ErrCodeInvalidConfig        Code = "INVALID_CONFIG"
	ErrCodeInvalidPath          Code = "INVALID_PATH"

	// Election state
	ErrCodeEmptyProfile Code = "EMPTY_PROFILE"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Cache and result backends
	ErrCodeNetwork Code = "NETWORK_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Structural reports whether err should terminate a search run.
// Structural errors are the ones the driver cannot recover from by trying
// another elimination order or a different coalition size.
func Structural(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidCoalitionSize, ErrCodeEmptyProfile, ErrCodeInvalidBallot,
		ErrCodeInvalidCandidate, ErrCodeInvalidOrder:
		return true
	}
	return false
}
