package action

import (
	"time"

	"github.com/team-rocos/rclactiongo/allocator"
	"github.com/team-rocos/rclactiongo/transport"
)

// ServerOptions are the enumerated settings a server is constructed with:
// a QoS profile per endpoint, the result-retention timeout, and the
// allocator every server-owned heap region is routed through.
type ServerOptions struct {
	GoalServiceQoS   transport.QoS
	CancelServiceQoS transport.QoS
	ResultServiceQoS transport.QoS
	FeedbackTopicQoS transport.QoS
	StatusTopicQoS   transport.QoS

	// ResultTimeout is the non-negative duration a terminated goal is
	// retained before its handle is finalized and removed.
	ResultTimeout time.Duration

	Allocator allocator.Allocator
}

// DefaultServerOptions mirrors rcl_action_server_get_default_options: QoS
// defaults per endpoint role and a 15-minute result retention window.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		GoalServiceQoS:   transport.DefaultQoS(),
		CancelServiceQoS: transport.DefaultQoS(),
		ResultServiceQoS: transport.DefaultQoS(),
		FeedbackTopicQoS: transport.DefaultQoS(),
		StatusTopicQoS:   transport.StatusQoS(),
		ResultTimeout:    15 * time.Minute,
		Allocator:        allocator.Default{},
	}
}
