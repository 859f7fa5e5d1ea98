// Package errs provides structured, user-friendly errors with machine-parseable codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-parseable error identifier.
type ErrorCode string

const (
	// General
	ErrConfig ErrorCode = "ERR-001"

	// Check errors
	ErrCheckUnknownKind ErrorCode = "ERR-CHECK-001"

	// Docker errors
	ErrDockerConnect ErrorCode = "ERR-DOCKER-001"
	ErrDockerInspect ErrorCode = "ERR-DOCKER-002"

	// History errors
	ErrHistoryRead  ErrorCode = "ERR-HIST-001"
	ErrHistoryWrite ErrorCode = "ERR-HIST-002"
)

// PulseError is the standard structured error type used across all Pulse packages.
type PulseError struct {
	Code   ErrorCode // Machine-parseable error code
	Op     string    // Operation chain, e.g., "suite.run.probe"
	Check  string    // Check name the error belongs to, if any
	Cause  error     // Wrapped upstream error
	Advice string    // Human-readable remediation hint
}

func (e *PulseError) Error() string {
	if e.Check != "" {
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Op, e.Check, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Cause)
}

func (e *PulseError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the formatted user-facing error message with remediation advice.
func (e *PulseError) UserMessage() string {
	msg := fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Cause)
	if e.Check != "" {
		msg += fmt.Sprintf(" (check: %s)", e.Check)
	}
	if e.Advice != "" {
		msg += fmt.Sprintf("\n  → %s", e.Advice)
	}
	return msg
}

// New creates a new PulseError.
func New(code ErrorCode, op string, cause error) *PulseError {
	return &PulseError{Code: code, Op: op, Cause: cause}
}

// Newf creates a new PulseError with a formatted message as the cause.
func Newf(code ErrorCode, op, format string, args ...any) *PulseError {
	return &PulseError{Code: code, Op: op, Cause: fmt.Errorf(format, args...)}
}

// WithCheck sets the check name on a PulseError.
func (e *PulseError) WithCheck(check string) *PulseError {
	e.Check = check
	return e
}

// WithAdvice sets the human-readable remediation hint on a PulseError.
func (e *PulseError) WithAdvice(advice string) *PulseError {
	e.Advice = advice
	return e
}

// Wrap wraps an existing error as a PulseError at a new operation boundary.
func Wrap(err error, code ErrorCode, op string) *PulseError {
	if err == nil {
		return nil
	}
	return &PulseError{Code: code, Op: op, Cause: err}
}

// IsCode reports whether err is a PulseError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var pe *PulseError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// AsPulse extracts the *PulseError from err, or returns nil.
func AsPulse(err error) *PulseError {
	var pe *PulseError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}
