// Package action is the core of this repository: the server-side state
// and protocol machinery of the Action protocol. It owns the goal table,
// the acceptance/uniqueness invariants, cancel resolution, status
// snapshotting, and the expiration sweep. Everything else — the
// transport, the per-goal state machine, clock selection, and message
// serialization — is a named collaborator interface from the clock,
// goalhandle, transport, and wire packages.
//
// Grounded on actionlib/action_server.go's init()/Start() lifecycle
// (accept_new_goal restructured for services instead of topics) and on
// original_source/rcl_action/src/rcl_action/action_server.c's
// rcl_action_server_init/_fini (all-or-nothing construction, ordered
// teardown, error aggregation).
package action

import (
	modular "github.com/edwinhayes/logrus-modular"
	"github.com/sirupsen/logrus"

	"github.com/team-rocos/rclactiongo/actionerr"
	"github.com/team-rocos/rclactiongo/clock"
	"github.com/team-rocos/rclactiongo/goalhandle"
	"github.com/team-rocos/rclactiongo/transport"
)

// ServerState is the core entity. The zero value is the "zero-initialized"
// state: no allocations, every operation but Init, Fini, and IsValid is
// undefined on it.
type ServerState struct {
	initialized bool

	actionName string
	options    ServerOptions
	clock      clock.Clock
	logger     modular.ModuleLogger

	goalService   transport.Service
	cancelService transport.Service
	resultService transport.Service
	feedbackPub   transport.Publisher
	statusPub     transport.Publisher

	// goals is the authoritative table. Order is insertion order but is
	// not semantically meaningful; the expiration sweep's swap-remove
	// does not preserve it.
	goals []goalhandle.GoalHandle
}

// GetZeroInitializedServer returns a zero-valued ServerState, named to
// match the get_zero_initialized_server operation it mirrors. A plain
// `var s action.ServerState` is equivalent.
func GetZeroInitializedServer() ServerState {
	return ServerState{}
}

// GetDefaultOptions returns ServerOptions with this package's defaults.
func GetDefaultOptions() ServerOptions {
	return DefaultServerOptions()
}

// Init allocates and constructs the server's five endpoints against node,
// binds clock and options, and derives the action's service/topic names.
// Construction is all-or-nothing: on any failure, Init tears down whatever
// was already constructed (mirroring rcl_action_server_init's fail label,
// which calls rcl_action_server_fini and discards its result) and returns
// the first encountered error.
func (s *ServerState) Init(node transport.Node, clk clock.Clock, actionName string, opts ServerOptions, log *modular.ModuleLogger) error {
	if s.initialized {
		return actionerr.New(actionerr.AlreadyInit, "action server already initialized")
	}
	if node == nil {
		return actionerr.New(actionerr.InvalidArgument, "node is nil")
	}
	if clk == nil || !clk.IsValid() {
		return actionerr.New(actionerr.InvalidArgument, "invalid clock")
	}
	if actionName == "" {
		return actionerr.New(actionerr.InvalidArgument, "action name is empty")
	}
	if opts.Allocator == nil {
		return actionerr.New(actionerr.InvalidArgument, "invalid allocator")
	}

	lg := modular.NewRootLogger(logrus.New()).GetModuleLogger()
	if log != nil {
		lg = *log
	}

	s.actionName = actionName
	s.options = opts
	s.clock = clk
	s.logger = lg
	s.goals = nil

	var err error
	s.goalService, err = node.NewService(goalServiceName(actionName), opts.GoalServiceQoS)
	if err != nil {
		s.rollbackInit(node)
		return remapNameErr(err, "goal service")
	}
	s.cancelService, err = node.NewService(cancelServiceName(actionName), opts.CancelServiceQoS)
	if err != nil {
		s.rollbackInit(node)
		return remapNameErr(err, "cancel service")
	}
	s.resultService, err = node.NewService(resultServiceName(actionName), opts.ResultServiceQoS)
	if err != nil {
		s.rollbackInit(node)
		return remapNameErr(err, "result service")
	}
	s.feedbackPub, err = node.NewPublisher(feedbackTopicName(actionName), opts.FeedbackTopicQoS)
	if err != nil {
		s.rollbackInit(node)
		return remapNameErr(err, "feedback publisher")
	}
	s.statusPub, err = node.NewPublisher(statusTopicName(actionName), opts.StatusTopicQoS)
	if err != nil {
		s.rollbackInit(node)
		return remapNameErr(err, "status publisher")
	}

	s.initialized = true
	s.logger.Debugf("action server initialized for action %q", actionName)
	return nil
}

// rollbackInit tears down whatever endpoints were constructed before a
// failure, discarding teardown errors — construction has already failed,
// so a secondary fini error is expected and not informative (matches the
// original C comment verbatim in spirit).
func (s *ServerState) rollbackInit(node transport.Node) {
	_ = s.finiEndpoints()
	s.actionName = ""
	s.goals = nil
	s.goalService, s.cancelService, s.resultService = nil, nil, nil
	s.feedbackPub, s.statusPub = nil, nil
}

func remapNameErr(err error, what string) error {
	if err == transport.ErrNameInvalid {
		return actionerr.Wrap(actionerr.ActionNameInvalid, err, "failed to construct "+what)
	}
	return actionerr.Wrap(actionerr.Error, err, "failed to construct "+what)
}

// finiEndpoints tears down whichever of the five endpoints are non-nil,
// services before publishers. Errors are aggregated, never
// short-circuited.
func (s *ServerState) finiEndpoints() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.goalService != nil {
		record(s.goalService.Fini())
	}
	if s.cancelService != nil {
		record(s.cancelService.Fini())
	}
	if s.resultService != nil {
		record(s.resultService.Fini())
	}
	if s.feedbackPub != nil {
		record(s.feedbackPub.Fini())
	}
	if s.statusPub != nil {
		record(s.statusPub.Fini())
	}
	return firstErr
}

// Fini tears down all five endpoints, frees the action name, disposes any
// remaining goal handles, and returns the aggregate status. It is
// idempotent on an already-uninitialized server.
func (s *ServerState) Fini() error {
	if !s.initialized {
		return nil
	}

	err := s.finiEndpoints()

	for _, gh := range s.goals {
		gh.Dispose()
	}

	s.actionName = ""
	s.goals = nil
	s.goalService, s.cancelService, s.resultService = nil, nil, nil
	s.feedbackPub, s.statusPub = nil, nil
	s.initialized = false

	if err != nil {
		return actionerr.Wrap(actionerr.Error, err, "error during action server teardown")
	}
	return nil
}

// IsValid is the universal precondition for every operation but Init,
// Fini, and IsValid itself.
func (s *ServerState) IsValid() bool {
	if s == nil || !s.initialized {
		return false
	}
	if s.actionName == "" {
		return false
	}
	if s.goalService == nil || !s.goalService.IsValid() {
		return false
	}
	if s.cancelService == nil || !s.cancelService.IsValid() {
		return false
	}
	if s.resultService == nil || !s.resultService.IsValid() {
		return false
	}
	if s.feedbackPub == nil || !s.feedbackPub.IsValid() {
		return false
	}
	if s.statusPub == nil || !s.statusPub.IsValid() {
		return false
	}
	return true
}

func (s *ServerState) invalidErr() error {
	return actionerr.New(actionerr.ActionServerInvalid, "action server is not valid")
}
