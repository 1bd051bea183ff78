package action

import (
	"github.com/team-rocos/rclactiongo/goalhandle"
)

// ActionName returns the name this server was initialized with.
func (s *ServerState) ActionName() (string, error) {
	if !s.IsValid() {
		return "", s.invalidErr()
	}
	return s.actionName, nil
}

// Options returns a copy of the options this server was initialized with.
func (s *ServerState) Options() (ServerOptions, error) {
	if !s.IsValid() {
		return ServerOptions{}, s.invalidErr()
	}
	return s.options, nil
}

// GoalHandles returns the goal table in its current (unspecified, possibly
// swap-remove-shuffled) order. Callers must not assume stability across a
// mutating call such as ClearExpiredGoals.
func (s *ServerState) GoalHandles() ([]goalhandle.GoalHandle, error) {
	if !s.IsValid() {
		return nil, s.invalidErr()
	}
	if len(s.goals) == 0 {
		return nil, nil
	}
	out := make([]goalhandle.GoalHandle, len(s.goals))
	copy(out, s.goals)
	return out, nil
}
