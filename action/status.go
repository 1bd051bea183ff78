package action

import (
	"github.com/team-rocos/rclactiongo/actionerr"
	"github.com/team-rocos/rclactiongo/wire"
)

// GetGoalStatusArray snapshots every tracked goal's identity and current
// state. Mirrors rcl_action_get_goal_status_array: an empty table yields a
// nil slice rather than an allocated, zero-length one.
func (s *ServerState) GetGoalStatusArray() ([]wire.StatusEntry, error) {
	if !s.IsValid() {
		return nil, s.invalidErr()
	}
	if len(s.goals) == 0 {
		return nil, nil
	}

	if err := s.options.Allocator.Reserve(len(s.goals)); err != nil {
		return nil, actionerr.Wrap(actionerr.BadAlloc, err, "failed to reserve status array")
	}

	entries := make([]wire.StatusEntry, len(s.goals))
	for i, gh := range s.goals {
		entries[i] = wire.StatusEntry{Info: gh.Info(), State: gh.Status()}
	}
	return entries, nil
}

// PublishStatus snapshots the goal table and publishes it on the status
// topic, the way getStatus()/PublishStatus() publish the full goal-status
// array on every call rather than a diff.
func (s *ServerState) PublishStatus() error {
	if !s.IsValid() {
		return s.invalidErr()
	}
	entries, err := s.GetGoalStatusArray()
	if err != nil {
		return err
	}
	if err := s.statusPub.Publish(entries); err != nil {
		return actionerr.Wrap(actionerr.Error, err, "failed to publish status")
	}
	return nil
}

// PublishFeedback forwards an application-supplied feedback message for an
// executing goal onto the feedback topic. The core does not interpret msg;
// it only routes it, matching PublishFeedback()'s pass-through behavior.
func (s *ServerState) PublishFeedback(msg any) error {
	if !s.IsValid() {
		return s.invalidErr()
	}
	if err := s.feedbackPub.Publish(msg); err != nil {
		return actionerr.Wrap(actionerr.Error, err, "failed to publish feedback")
	}
	return nil
}
