// Package actionerr defines the error kinds the action server core surfaces
// to callers. Every error path wraps a descriptive message with
// github.com/pkg/errors, the way dynamic_action.go wraps lookup failures,
// so a stack trace survives to the ambient error channel.
package actionerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the domain-level error categories the action server core
// returns.
type Kind uint8

const (
	// Ok is never returned as an error; it exists so the zero Kind is
	// distinguishable from an unset error.
	Ok Kind = iota
	// InvalidArgument covers a null pointer, invalid allocator, or invalid
	// clock passed to an operation.
	InvalidArgument
	// ActionServerInvalid marks an operation attempted on an
	// uninitialized or otherwise invalid server.
	ActionServerInvalid
	// NodeInvalid marks a companion node that is not usable.
	NodeInvalid
	// AlreadyInit marks Init called on an already-initialized server.
	AlreadyInit
	// BadAlloc marks an allocation failure; surfaced distinctly so
	// callers may retry.
	BadAlloc
	// ActionNameInvalid marks a derived topic/service name the transport
	// rejected.
	ActionNameInvalid
	// ActionServerTakeFailed marks a soft failure: no request was
	// available when a take was attempted.
	ActionServerTakeFailed
	// Error is the catch-all kind; a descriptive message is always set.
	Error
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case InvalidArgument:
		return "InvalidArgument"
	case ActionServerInvalid:
		return "ActionServerInvalid"
	case NodeInvalid:
		return "NodeInvalid"
	case AlreadyInit:
		return "AlreadyInit"
	case BadAlloc:
		return "BadAlloc"
	case ActionNameInvalid:
		return "ActionNameInvalid"
	case ActionServerTakeFailed:
		return "ActionServerTakeFailed"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every core operation returns. It
// satisfies the standard error interface and unwraps to the wrapped cause,
// if any, so errors.Is/errors.As work against a collaborator's original
// error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no collaborator cause: its Err is a fresh
// pkg/errors value carrying msg and a stack trace.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: errors.New(msg)}
}

// Wrap builds an Error wrapping cause with additional context, preserving
// cause's stack trace the way dynamic_action.go's errors.Wrap calls do.
func Wrap(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: errors.Wrap(cause, msg)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
