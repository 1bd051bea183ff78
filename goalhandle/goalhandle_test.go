package goalhandle

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewIsAccepting(t *testing.T) {
	gh := New(GoalInfo{UUID: uuid.New()})
	if gh.Status() != Accepting {
		t.Fatalf("new handle status = %s, want ACCEPTING", gh.Status())
	}
	if !gh.IsActive() || !gh.IsCancelable() {
		t.Fatalf("new handle should be active and cancelable")
	}
}

func TestTransitionExecuteThenSucceed(t *testing.T) {
	gh := New(GoalInfo{UUID: uuid.New()})
	if _, err := gh.Transition(Execute); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gh.Status() != Executing {
		t.Fatalf("status = %s, want EXECUTING", gh.Status())
	}
	if !gh.IsCancelable() {
		t.Fatalf("executing goal should be cancelable")
	}
	if _, err := gh.Transition(Succeed); err != nil {
		t.Fatalf("Succeed: %v", err)
	}
	if gh.Status() != Succeeded {
		t.Fatalf("status = %s, want SUCCEEDED", gh.Status())
	}
	if gh.IsActive() || gh.IsCancelable() {
		t.Fatalf("terminated goal must be neither active nor cancelable")
	}
}

func TestTransitionCancelPath(t *testing.T) {
	gh := New(GoalInfo{UUID: uuid.New()})
	if _, err := gh.Transition(CancelGoal); err != nil {
		t.Fatalf("CancelGoal from accepting: %v", err)
	}
	if gh.Status() != Canceling {
		t.Fatalf("status = %s, want CANCELING", gh.Status())
	}
	if gh.IsCancelable() {
		t.Fatalf("a goal already canceling is not itself cancelable again")
	}
	if _, err := gh.Transition(CancelComplete); err != nil {
		t.Fatalf("CancelComplete: %v", err)
	}
	if gh.Status() != Canceled {
		t.Fatalf("status = %s, want CANCELED", gh.Status())
	}
}

func TestTerminalStateRejectsEvents(t *testing.T) {
	gh := New(GoalInfo{UUID: uuid.New()})
	if _, err := gh.Transition(Execute); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := gh.Transition(Abort); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if _, err := gh.Transition(Execute); err == nil {
		t.Fatalf("expected error transitioning out of a terminal state")
	}
}

func TestGoalInfoStampRoundTrip(t *testing.T) {
	info := GoalInfo{UUID: uuid.New(), StampSec: 5, StampNanosec: 250}
	want := int64(5)*1e9 + 250
	if got := info.StampNanos(); got != want {
		t.Fatalf("StampNanos() = %d, want %d", got, want)
	}
}

func TestGoalInfoIsZero(t *testing.T) {
	var zero GoalInfo
	if !zero.IsZero() {
		t.Fatalf("zero-value GoalInfo should be IsZero")
	}
	nonZero := GoalInfo{UUID: uuid.New()}
	if nonZero.IsZero() {
		t.Fatalf("GoalInfo with a real uuid should not be IsZero")
	}
}
