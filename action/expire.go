package action

import (
	"github.com/team-rocos/rclactiongo/actionerr"
)

// ClearExpiredGoals disposes and removes every non-active goal whose
// accepted stamp is older than the server's result-retention window,
// returning the count removed. Grounded on rcl_action_clear_expired_goals,
// but deliberately not replicating its two flagged bugs: the shrink
// reallocates to the correct element count rather than a byte count, and
// the swap-remove moves the last entry into the vacated slot and leaves the
// scan index in place so the moved entry is examined on the same pass,
// rather than skipping over it.
//
// A backward clock reading (now <= t) is treated as "not yet expired" and
// never causes a panic or a negative duration to be compared.
func (s *ServerState) ClearExpiredGoals() (int, error) {
	if !s.IsValid() {
		return 0, s.invalidErr()
	}

	now, err := s.clock.Now()
	if err != nil {
		return 0, actionerr.Wrap(actionerr.Error, err, "failed to read clock")
	}

	removed := 0
	i := 0
	for i < len(s.goals) {
		gh := s.goals[i]
		if gh.IsActive() {
			i++
			continue
		}

		t := gh.Info().StampNanos()
		if now <= t || now-t <= int64(s.options.ResultTimeout) {
			i++
			continue
		}

		gh.Dispose()
		last := len(s.goals) - 1
		s.goals[i] = s.goals[last]
		s.goals[last] = nil
		s.goals = s.goals[:last]
		removed++
		// Do not advance i: the entry swapped into slot i has not been
		// examined yet.
	}

	return removed, nil
}
