// Package gameerr carries request-scoped rule failures whose messages are shown
// to players verbatim.
package gameerr

import (
	"errors"
	"fmt"
)

// Error pairs a sentinel kind with a localized, player-facing message.
//
// Invariant: Kind is non-nil; Message is the exact text reported to the caller.
type Error struct {
	Kind    error
	Message string
}

// Error returns the player-facing message.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes Kind so callers can match with errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// New builds an Error of the given kind with a formatted message.
//
// Precondition: kind must be non-nil.
// Postcondition: errors.Is(result, kind) is true.
func New(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message extracts the player-facing message from err.
//
// Postcondition: Returns (message, true) if err wraps an *Error, or ("", false).
func Message(err error) (string, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message, true
	}
	return "", false
}
