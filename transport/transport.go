// Package transport declares the pub/sub and request/response collaborator
// interfaces the action server core binds to: three request/response
// services (goal, cancel, result) and two publishers (feedback, status),
// all bound to a Node. The core never depends on a concrete transport;
// transport/local ships the default in-process one.
package transport

import "errors"

// ErrNameInvalid is returned by Node.NewService/NewPublisher when the
// derived name is rejected. The core remaps this to
// actionerr.ActionNameInvalid.
var ErrNameInvalid = errors.New("transport: name invalid")

// ErrTakeFailed names the "no request pending" outcome. Service.TakeRequest
// does not return it: it reports that outcome as ok=false with a nil error,
// which the core remaps to actionerr.ActionServerTakeFailed — a soft failure
// callers typically loop on, not a real error.
var ErrTakeFailed = errors.New("transport: no request available")

// QoS is an opaque quality-of-service profile. The core never interprets
// it; it only threads ServerOptions' QoS fields through to endpoint
// construction, exactly as rcl_action_server_options_t does with
// rmw_qos_profile_t.
type QoS struct {
	// Reliable selects reliable delivery over best-effort.
	Reliable bool
	// Depth is the message/request queue depth.
	Depth int
}

// DefaultQoS mirrors rcl_action's rmw_qos_profile_services_default: small,
// reliable queues.
func DefaultQoS() QoS { return QoS{Reliable: true, Depth: 10} }

// StatusQoS mirrors rcl_action_qos_profile_status_default: reliable delivery
// with a queue depth of 1, so only the latest status snapshot is held. QoS
// has no durability field, so transient-local durability is not modeled.
func StatusQoS() QoS { return QoS{Reliable: true, Depth: 1} }

// Service is the request/response collaborator bound to one of the action
// server's three services.
type Service interface {
	Name() string
	// TakeRequest pulls one pending request into out, decoding into it.
	// ok is false (with a nil error) when no request is currently
	// pending — the core remaps that to ActionServerTakeFailed.
	TakeRequest(out any) (ok bool, err error)
	// SendResponse forwards resp. The core does not correlate responses
	// to prior takes; that pairing is the host's responsibility.
	SendResponse(resp any) error
	IsValid() bool
	Fini() error
}

// Publisher is the collaborator bound to the feedback and status topics.
type Publisher interface {
	Name() string
	Publish(msg any) error
	IsValid() bool
	Fini() error
}

// Node constructs and validates the named endpoints an action server binds
// to. A NewService/NewPublisher call that rejects name returns
// ErrNameInvalid.
type Node interface {
	Name() string
	NewService(name string, qos QoS) (Service, error)
	NewPublisher(name string, qos QoS) (Publisher, error)
}
