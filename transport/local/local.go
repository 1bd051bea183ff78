// Package local is the default, in-process transport.Node implementation:
// services and publishers backed by buffered channels instead of network
// sockets. It exists so the action server core can be constructed, driven,
// and tested without a real pub/sub middleware, and so cmd/actionserverd
// has something concrete to wire.
//
// The channel-draining shape is grounded on ros/subscriber.go (a goroutine
// per endpoint draining a buffered message channel) and
// ros/subscription.go, generalized from ROS1's publisher/subscriber-only
// model to also cover request/response services.
package local

import (
	"fmt"
	"strings"
	"sync"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/sirupsen/logrus"

	"github.com/team-rocos/rclactiongo/transport"
)

// Node is an in-process transport.Node. Zero value is not usable; use New.
type Node struct {
	name   string
	logger modular.ModuleLogger

	mu         sync.Mutex
	services   map[string]*Service
	publishers map[string]*Publisher
}

var _ transport.Node = (*Node)(nil)

// New constructs a named local Node. If log is nil, a root logrus logger
// is used, keeping a *modular.ModuleLogger available on the node at all
// times.
func New(name string, log *modular.ModuleLogger) *Node {
	lg := modular.NewRootLogger(logrus.New()).GetModuleLogger()
	if log != nil {
		lg = *log
	}
	return &Node{
		name:       name,
		logger:     lg,
		services:   make(map[string]*Service),
		publishers: make(map[string]*Publisher),
	}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

func validName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n")
}

// NewService registers and returns a new Service bound to name.
func (n *Node) NewService(name string, qos transport.QoS) (transport.Service, error) {
	if !validName(name) {
		return nil, transport.ErrNameInvalid
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	svc := newService(name, qos)
	n.services[name] = svc
	return svc, nil
}

// NewPublisher registers and returns a new Publisher bound to name.
func (n *Node) NewPublisher(name string, qos transport.QoS) (transport.Publisher, error) {
	if !validName(name) {
		return nil, transport.ErrNameInvalid
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	pub := newPublisher(name, qos)
	n.publishers[name] = pub
	return pub, nil
}

// Service looks up a previously constructed Service by name — used by test
// harnesses and the CLI demo to drive requests in without a real client.
func (n *Node) Service(name string) (*Service, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.services[name]
	return s, ok
}

// Publisher looks up a previously constructed Publisher by name — used by
// test harnesses to observe published feedback/status messages.
func (n *Node) Publisher(name string) (*Publisher, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.publishers[name]
	return p, ok
}

// Service is an in-process transport.Service.
type Service struct {
	name string
	qos  transport.QoS

	mu       sync.Mutex
	valid    bool
	requests chan any
	sent     chan any
}

var _ transport.Service = (*Service)(nil)

func newService(name string, qos transport.QoS) *Service {
	depth := qos.Depth
	if depth <= 0 {
		depth = 1
	}
	return &Service{
		name:     name,
		qos:      qos,
		valid:    true,
		requests: make(chan any, depth),
		sent:     make(chan any, depth),
	}
}

// Name returns the service's derived name.
func (s *Service) Name() string { return s.name }

// IsValid reports whether the service has not been finalized.
func (s *Service) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid
}

// Fini finalizes the service. Idempotent.
func (s *Service) Fini() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
	return nil
}

// TakeRequest pulls one pending request, if any, into out by simple
// assignment through the `any` holder pattern: out must be a *any; any
// other target type yields an error.
func (s *Service) TakeRequest(out any) (bool, error) {
	select {
	case req := <-s.requests:
		if err := assign(out, req); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// SendResponse forwards resp to whatever is draining Sent() — typically a
// test harness or the demo CLI's client stub.
func (s *Service) SendResponse(resp any) error {
	if !s.IsValid() {
		return fmt.Errorf("local: service %q is not valid", s.name)
	}
	select {
	case s.sent <- resp:
		return nil
	default:
		return fmt.Errorf("local: service %q response queue full", s.name)
	}
}

// Submit enqueues req as a pending request — the client-side half of the
// request/response exchange a real transport would perform over the wire.
func (s *Service) Submit(req any) error {
	select {
	case s.requests <- req:
		return nil
	default:
		return fmt.Errorf("local: service %q request queue full", s.name)
	}
}

// Sent returns the channel of responses SendResponse has forwarded.
func (s *Service) Sent() <-chan any { return s.sent }

// Publisher is an in-process transport.Publisher.
type Publisher struct {
	name string
	qos  transport.QoS

	mu        sync.Mutex
	valid     bool
	published chan any
}

var _ transport.Publisher = (*Publisher)(nil)

func newPublisher(name string, qos transport.QoS) *Publisher {
	depth := qos.Depth
	if depth <= 0 {
		depth = 1
	}
	return &Publisher{
		name:      name,
		qos:       qos,
		valid:     true,
		published: make(chan any, depth),
	}
}

// Name returns the publisher's derived name.
func (p *Publisher) Name() string { return p.name }

// IsValid reports whether the publisher has not been finalized.
func (p *Publisher) IsValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.valid
}

// Fini finalizes the publisher. Idempotent.
func (p *Publisher) Fini() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.valid = false
	return nil
}

// Publish forwards msg to whatever is draining Published().
func (p *Publisher) Publish(msg any) error {
	if !p.IsValid() {
		return fmt.Errorf("local: publisher %q is not valid", p.name)
	}
	select {
	case p.published <- msg:
		return nil
	default:
		// Best-effort, unreliable delivery: drop the oldest entry rather
		// than block the publisher, matching a best-effort QoS profile.
		select {
		case <-p.published:
		default:
		}
		p.published <- msg
		return nil
	}
}

// Published returns the channel of messages Publish has forwarded.
func (p *Publisher) Published() <-chan any { return p.published }

// assign copies src into the value out points to, when the dynamic types
// line up. It exists because the in-process transport never actually
// serializes payloads — it passes Go values directly — so TakeRequest only
// needs to hand the caller's pointer the right concrete value.
func assign(out any, src any) error {
	switch p := out.(type) {
	case *any:
		*p = src
		return nil
	default:
		return fmt.Errorf("local: TakeRequest target %T cannot accept %T", out, src)
	}
}
