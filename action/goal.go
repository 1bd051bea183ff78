package action

import (
	"github.com/google/uuid"

	"github.com/team-rocos/rclactiongo/actionerr"
	"github.com/team-rocos/rclactiongo/clock"
	"github.com/team-rocos/rclactiongo/goalhandle"
)

// GoalExists reports whether info's UUID already occupies a slot in the
// goal table, regardless of the stamp carried alongside it — the
// uniqueness invariant is keyed on UUID alone.
func (s *ServerState) GoalExists(info goalhandle.GoalInfo) (bool, error) {
	if !s.IsValid() {
		return false, s.invalidErr()
	}
	return s.findGoal(info.UUID) != nil, nil
}

func (s *ServerState) findGoal(id uuid.UUID) goalhandle.GoalHandle {
	for _, gh := range s.goals {
		if gh.Info().UUID == id {
			return gh
		}
	}
	return nil
}

// AcceptNewGoal validates info, stamps it with the server clock's current
// time (the server is the sole authority over the accepted stamp; any
// stamp the caller supplied is overwritten), rejects a duplicate UUID, and
// appends a new handle to the goal table. Mirrors
// rcl_action_accept_new_goal: reserve before mutate, so a failed
// allocation leaves the table untouched.
func (s *ServerState) AcceptNewGoal(info goalhandle.GoalInfo) (goalhandle.GoalHandle, error) {
	if !s.IsValid() {
		return nil, s.invalidErr()
	}
	if s.findGoal(info.UUID) != nil {
		return nil, actionerr.New(actionerr.Error, "goal uuid already exists")
	}

	if err := s.options.Allocator.Reserve(len(s.goals) + 1); err != nil {
		return nil, actionerr.Wrap(actionerr.BadAlloc, err, "failed to reserve goal table capacity")
	}

	now, err := s.clock.Now()
	if err != nil {
		return nil, actionerr.Wrap(actionerr.Error, err, "failed to read clock")
	}
	sec, nanosec := clock.SplitStamp(now)
	stamped := goalhandle.GoalInfo{UUID: info.UUID, StampSec: sec, StampNanosec: nanosec}

	gh := goalhandle.New(stamped)
	s.goals = append(s.goals, gh)
	s.logger.Debugf("accepted goal %s at %d.%09d", stamped.UUID, stamped.StampSec, stamped.StampNanosec)
	return gh, nil
}
