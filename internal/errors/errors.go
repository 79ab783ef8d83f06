package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig    = "CONFIG"
	ErrInterface = "INTERFACE"
	ErrCounter   = "COUNTER"
	ErrTerminal  = "TERMINAL"
	ErrSSH       = "SSH"
	ErrExec      = "EXEC"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Printed to the error stream as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrCounter code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrCounter,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// InterfaceNotFound is raised at startup when the configured or detected
// interface can't be located.
func InterfaceNotFound(name string, cause error) *Error {
	msg := fmt.Sprintf("Network interface '%s' not found", name)
	if name == "" {
		msg = "Failed to detect a network interface"
	}
	return &Error{
		Code:       ErrInterface,
		Message:    msg,
		Suggestion: "List available interfaces with 'netbwmon interfaces' and pass one with -i.",
		Cause:      cause,
	}
}

// CounterReadFailure is raised when a previously found interface stops reporting.
func CounterReadFailure(name string, cause error) *Error {
	return &Error{
		Code:       ErrCounter,
		Message:    fmt.Sprintf("Failed to read rx and tx bytes from %s", name),
		Suggestion: "The interface may have been removed or renamed.",
		Cause:      cause,
	}
}

// TerminalTooSmall is raised when the terminal can't fit two graphs and the stats rows.
func TerminalTooSmall(width, height, minWidth, minHeight int) *Error {
	return &Error{
		Code:       ErrTerminal,
		Message:    fmt.Sprintf("Terminal is too small (%dx%d)", width, height),
		Suggestion: fmt.Sprintf("Resize the terminal to at least %dx%d.", minWidth, minHeight),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", causeText(e.Cause)))
	}

	if s := e.suggestion(); s != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", s))
	}

	return b.String()
}

// causeText flattens a chain of structured causes into one line so nested
// errors don't repeat the ✗ block.
func causeText(err error) string {
	inner, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	if inner.Cause == nil {
		return inner.Message
	}
	return inner.Message + ": " + causeText(inner.Cause)
}

// suggestion falls back to the innermost structured cause's hint.
func (e *Error) suggestion() string {
	if e.Suggestion != "" {
		return e.Suggestion
	}
	if inner, ok := e.Cause.(*Error); ok {
		return inner.suggestion()
	}
	return ""
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var nbErr *Error
	if errors.As(err, &nbErr) {
		return nbErr.Code == code
	}
	return false
}
