// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a robdd error, per §7.
type ErrorKind int

const (
	// MalformedInput covers invalid NID text, an unknown VID in a save
	// stream, or an ITE argument that required an internal node but named a
	// leaf. Reported to the caller; state is left untouched.
	MalformedInput ErrorKind = iota
	// InvariantViolated covers a unique-table row discovering a (hi, lo)
	// pair whose hi carries INV, or any other internal consistency failure
	// (including a dependency cycle, which should never happen given the
	// normalizer's strictly-deeper-VID guarantee). Fatal: it indicates a
	// bug, not a recoverable condition.
	InvariantViolated
	// EvalUndefined covers Eval called with an incomplete assignment.
	EvalUndefined
	// Cancelled is returned by a call still waiting on the Swarm when its
	// Base is closed.
	Cancelled
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case InvariantViolated:
		return "InvariantViolated"
	case EvalUndefined:
		return "EvalUndefined"
	case Cancelled:
		return "Cancelled"
	}
	return "UnknownError"
}

// Error wraps an ErrorKind with a github.com/pkg/errors chain so the
// failure retains context (and, where available, a stack) from the point it
// was raised to wherever the caller inspects it.
type Error struct {
	Kind ErrorKind
	err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.err)
}

// Unwrap exposes the wrapped error so errors.Is/errors.As (both the
// standard library's and github.com/pkg/errors') see through to the cause.
func (e *Error) Unwrap() error { return e.err }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

func wrapError(kind ErrorKind, cause error, msg string) *Error {
	return &Error{Kind: kind, err: errors.Wrap(cause, msg)}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
