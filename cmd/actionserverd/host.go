package main

import (
	"context"
	"time"

	"github.com/team-rocos/rclactiongo/action"
	"github.com/team-rocos/rclactiongo/clock"
	"github.com/team-rocos/rclactiongo/transport/local"
)

// serverHost owns one action server wired to an in-process node, plus the
// timers that drive it when no real middleware spins its event loop.
type serverHost struct {
	node   *local.Node
	server action.ServerState
}

func newServerHost(actionName string, opts action.ServerOptions) (*serverHost, error) {
	node := local.New("actionserverd", nil)
	h := &serverHost{node: node}
	if err := h.server.Init(node, clock.SystemClock{}, actionName, opts, nil); err != nil {
		return nil, err
	}
	return h, nil
}

// Run drives the status-publish and expiration-sweep timers until ctx is
// canceled, mirroring actionlib's Start() select loop over statusTimer.C
// and shutdownChan — generalized here to also fire the sweep on its own
// period.
func (h *serverHost) Run(ctx context.Context, statusPeriod, sweepPeriod time.Duration) {
	if ctx == nil {
		ctx = context.Background()
	}

	statusTicker := time.NewTicker(statusPeriod)
	defer statusTicker.Stop()
	sweepTicker := time.NewTicker(sweepPeriod)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-statusTicker.C:
			_ = h.server.PublishStatus()
		case <-sweepTicker.C:
			_, _ = h.server.ClearExpiredGoals()
		}
	}
}

// Close tears down the hosted action server.
func (h *serverHost) Close() error {
	return h.server.Fini()
}
