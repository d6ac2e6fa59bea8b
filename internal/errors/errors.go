// Package errors provides the error definitions shared across cellery-dev.
//
// Two groups of errors exist:
//
// The user-facing precondition error is raised by the dispatcher when an
// action cannot proceed (empty input, no active file, no workspace). It is
// shown to the user with a generic message and is never logged.
//
// Terminal errors carry context about a failing tmux operation:
//
//	err := errors.NewTerminalError("send-keys", "cellery-build", cause)
//	fmt.Println(err) // "terminal error [session=cellery-build, op=send-keys]: ..."
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMissingPrecondition) { ... }
//
//	var termErr *errors.TerminalError
//	if errors.As(err, &termErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrMissingPrecondition indicates that an action was invoked without one
	// of its required values (input, active file or workspace root).
	ErrMissingPrecondition = New("missing precondition")
	// ErrTerminalNotRunning indicates an operation on a disposed terminal.
	ErrTerminalNotRunning = New("terminal is not running")
	// ErrTmuxUnavailable indicates that tmux could not be found in PATH.
	ErrTmuxUnavailable = New("tmux not available")
)

// -----------------------------------------------------------------------------
// Precondition Errors
// -----------------------------------------------------------------------------

// PreconditionError records which action failed its preconditions.
// The fields that were missing are kept for tests and debugging only; the
// user only ever sees the generic action message.
type PreconditionError struct {
	Action  string
	Missing []string
}

// NewPreconditionError creates a PreconditionError for the given action.
func NewPreconditionError(action string, missing ...string) *PreconditionError {
	return &PreconditionError{Action: action, Missing: missing}
}

// Error returns the formatted error message.
func (e *PreconditionError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s: %s", e.Action, ErrMissingPrecondition)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Action, ErrMissingPrecondition, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrMissingPrecondition so errors.Is matches the sentinel.
func (e *PreconditionError) Unwrap() error {
	return ErrMissingPrecondition
}

// -----------------------------------------------------------------------------
// Terminal Errors
// -----------------------------------------------------------------------------

// TerminalError represents a failure talking to a terminal session.
type TerminalError struct {
	Op      string
	Session string
	cause   error
}

// NewTerminalError creates a new TerminalError.
func NewTerminalError(op, session string, cause error) *TerminalError {
	return &TerminalError{Op: op, Session: session, cause: cause}
}

// Error returns the formatted error message.
func (e *TerminalError) Error() string {
	var parts []string
	if e.Session != "" {
		parts = append(parts, fmt.Sprintf("session=%s", e.Session))
	}
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	prefix := "terminal error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("terminal error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.cause)
	}
	return prefix
}

// Unwrap returns the underlying error.
func (e *TerminalError) Unwrap() error {
	return e.cause
}

// IsUserFacing reports whether err should be displayed with the generic
// action message instead of its own text.
func IsUserFacing(err error) bool {
	return Is(err, ErrMissingPrecondition)
}
