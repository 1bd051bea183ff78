// Package goalhandle implements the per-goal lifecycle state machine the
// action server core treats as an external collaborator: the core only
// ever calls Info, Status, IsActive, IsCancelable, Transition, and Dispose
// on it. This package ships the default implementation the core is built
// and tested against.
//
// The state machine is restructured from a 9-state ROS1 actionlib machine
// (actionlib/server_state_machine.go) into the 6-state machine this
// protocol uses: accepting, executing, canceling, succeeded, aborted,
// canceled.
package goalhandle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// GoalInfo carries a goal's identity: a client-chosen UUID (zero-UUID
// reserved as sentinel) and the stamp assigned at acceptance, split into
// a wire-level (sec, nanosec) pair.
type GoalInfo struct {
	UUID         uuid.UUID
	StampSec     int32
	StampNanosec uint32
}

// StampNanos joins the (sec, nanosec) pair back into a signed nanosecond
// instant.
func (gi GoalInfo) StampNanos() int64 {
	const billion = int64(1e9)
	return int64(gi.StampSec)*billion + int64(gi.StampNanosec)
}

// IsZero reports whether this GoalInfo is the zero-UUID/zero-stamp
// sentinel the cancel-request protocol gives special meaning to.
func (gi GoalInfo) IsZero() bool {
	return gi.UUID == uuid.Nil && gi.StampSec == 0 && gi.StampNanosec == 0
}

// State is one of the six states a goal's lifecycle may occupy.
type State uint8

const (
	// Unknown is the zero value; no real goal handle is ever left in it.
	Unknown State = iota
	Accepting
	Executing
	Canceling
	Succeeded
	Aborted
	Canceled
)

func (s State) String() string {
	switch s {
	case Accepting:
		return "ACCEPTING"
	case Executing:
		return "EXECUTING"
	case Canceling:
		return "CANCELING"
	case Succeeded:
		return "SUCCEEDED"
	case Aborted:
		return "ABORTED"
	case Canceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Event drives a Transition.
type Event uint8

const (
	_ Event = iota
	// Execute moves an accepting goal into executing.
	Execute
	// CancelGoal requests cancellation of an accepting or executing goal.
	CancelGoal
	// Succeed moves an executing or canceling goal to succeeded.
	Succeed
	// Abort moves an executing or canceling goal to aborted.
	Abort
	// CancelComplete moves a canceling goal to canceled.
	CancelComplete
)

func (e Event) String() string {
	switch e {
	case Execute:
		return "EXECUTE"
	case CancelGoal:
		return "CANCEL_GOAL"
	case Succeed:
		return "SUCCEED"
	case Abort:
		return "ABORT"
	case CancelComplete:
		return "CANCEL_COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// GoalHandle is the collaborator interface the action server core invokes.
// Its Info is immutable after creation; IsActive/IsCancelable are pure
// functions of current state; Transition is the only mutator.
type GoalHandle interface {
	Info() GoalInfo
	Status() State
	IsActive() bool
	IsCancelable() bool
	Transition(event Event) (State, error)
	Dispose()
}

// Default is the state-machine-backed GoalHandle this repo ships. One
// Default is created per accepted goal; its mutex mirrors
// serverStateMachine (actionlib/server_state_machine.go), one RWMutex per
// goal rather than a single lock shared across the whole table.
type Default struct {
	info  GoalInfo
	mu    sync.RWMutex
	state State
}

var _ GoalHandle = (*Default)(nil)

// New creates a handle in the Accepting state for the given info.
func New(info GoalInfo) *Default {
	return &Default{info: info, state: Accepting}
}

// Info returns the immutable goal identity.
func (h *Default) Info() GoalInfo {
	return h.info
}

// Status returns the current lifecycle state.
func (h *Default) Status() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// IsActive reports whether the goal has not yet reached a terminal state.
func (h *Default) IsActive() bool {
	switch h.Status() {
	case Accepting, Executing, Canceling:
		return true
	default:
		return false
	}
}

// IsCancelable reports whether a cancel request may still be honored.
func (h *Default) IsCancelable() bool {
	switch h.Status() {
	case Accepting, Executing:
		return true
	default:
		return false
	}
}

// Transition applies event to the state machine, returning the resulting
// state or an error if the event is not valid from the current state.
func (h *Default) Transition(event Event) (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := nextState(h.state, event)
	if err != nil {
		return h.state, err
	}
	h.state = next
	return h.state, nil
}

// Dispose is a no-op for Default: Go's garbage collector reclaims the
// handle once the server drops its reference. It exists so the core can
// call it uniformly regardless of collaborator implementation.
func (h *Default) Dispose() {}

func nextState(current State, event Event) (State, error) {
	switch current {
	case Accepting:
		switch event {
		case Execute:
			return Executing, nil
		case CancelGoal:
			return Canceling, nil
		}
	case Executing:
		switch event {
		case Succeed:
			return Succeeded, nil
		case Abort:
			return Aborted, nil
		case CancelGoal:
			return Canceling, nil
		}
	case Canceling:
		switch event {
		case CancelComplete:
			return Canceled, nil
		case Succeed:
			return Succeeded, nil
		case Abort:
			return Aborted, nil
		}
	case Succeeded, Aborted, Canceled:
		// Terminal states accept no further transitions.
	}
	return current, fmt.Errorf("goalhandle: invalid transition %s from state %s", event, current)
}
