package action

import (
	"math"

	"github.com/google/uuid"

	"github.com/team-rocos/rclactiongo/actionerr"
	"github.com/team-rocos/rclactiongo/goalhandle"
)

// CancelResponse is the result of resolving a cancel request: every
// cancelable goal the request selected, now transitioned to Canceling.
type CancelResponse struct {
	GoalsCanceling []goalhandle.GoalInfo
}

// ProcessCancelRequest classifies req against a 2x2 truth table on (uuid
// zero?, stamp zero?) and transitions every selected, still-cancelable
// goal to Canceling:
//
//   - uuid set, stamp zero:    cancel exactly that goal.
//   - uuid zero, stamp zero:   cancel every cancelable goal (wildcard).
//   - uuid zero, stamp set:    cancel every cancelable goal accepted at or
//     before the stamp.
//   - uuid set, stamp set:     cancel that goal, plus every other
//     cancelable goal accepted at or before the stamp (union).
//
// Mirrors rcl_action_process_cancel_request's branch structure, but
// collapses the three "by stamp" branches into one loop keyed on a
// req_nanos upper bound, with the wildcard case using math.MaxInt64 as that
// bound so every goal passes the stamp test.
func (s *ServerState) ProcessCancelRequest(req goalhandle.GoalInfo) (CancelResponse, error) {
	if !s.IsValid() {
		return CancelResponse{}, s.invalidErr()
	}

	var resp CancelResponse

	if req.UUID != uuid.Nil && req.StampSec == 0 && req.StampNanosec == 0 {
		// Single-goal: an unknown uuid is not an error, it just cancels
		// nothing.
		gh := s.findGoal(req.UUID)
		if gh == nil {
			return resp, nil
		}
		if gh.IsCancelable() {
			if _, err := gh.Transition(goalhandle.CancelGoal); err != nil {
				return CancelResponse{}, actionerr.Wrap(actionerr.Error, err, "failed to transition goal to canceling")
			}
			resp.GoalsCanceling = append(resp.GoalsCanceling, gh.Info())
		}
		return resp, nil
	}

	reqNanos := int64(math.MaxInt64)
	if req.StampSec != 0 || req.StampNanosec != 0 {
		reqNanos = req.StampNanos()
	}

	if err := s.options.Allocator.Reserve(len(s.goals)); err != nil {
		return CancelResponse{}, actionerr.Wrap(actionerr.BadAlloc, err, "failed to reserve cancel selection")
	}

	for _, gh := range s.goals {
		if !gh.IsCancelable() {
			continue
		}
		info := gh.Info()

		matchesUUID := req.UUID != uuid.Nil && info.UUID == req.UUID
		matchesStamp := info.StampNanos() <= reqNanos

		if matchesUUID || matchesStamp {
			if _, err := gh.Transition(goalhandle.CancelGoal); err != nil {
				return CancelResponse{}, actionerr.Wrap(actionerr.Error, err, "failed to transition goal to canceling")
			}
			resp.GoalsCanceling = append(resp.GoalsCanceling, info)
		}
	}
	return resp, nil
}
