package action_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/team-rocos/rclactiongo/action"
	"github.com/team-rocos/rclactiongo/clock"
	"github.com/team-rocos/rclactiongo/goalhandle"
	"github.com/team-rocos/rclactiongo/transport/local"
)

// demoGoalRequest/demoGoalResponse/demoResultRequest/demoResultResponse are
// the minimal request/response payload shapes a real action definition
// (e.g. Fibonacci) would generate; this package never looks inside them
// beyond what the core itself needs.
type demoGoalRequest struct {
	UUID  uuid.UUID
	Order int32
}

type demoGoalResponse struct {
	Accepted bool
}

type demoResultRequest struct {
	UUID uuid.UUID
}

type demoResultResponse struct {
	Sequence []int32
}

// demoClient is a hand-rolled stand-in for a generated action client: it
// submits requests directly into the local transport's service queues and
// reads back whatever the server sends, the same shape
// libtest_simple_action's ActionClient exercised against a real
// SimpleActionServer.
type demoClient struct {
	node          *local.Node
	goalService   *local.Service
	cancelService *local.Service
	resultService *local.Service
	feedback      *local.Publisher
}

func newDemoClient(t *testing.T, node *local.Node, actionName string) *demoClient {
	t.Helper()
	goalSvc, ok := node.Service(actionName + "/_action/send_goal")
	if !ok {
		t.Fatalf("goal service %q not found", actionName)
	}
	cancelSvc, ok := node.Service(actionName + "/_action/cancel_goal")
	if !ok {
		t.Fatalf("cancel service %q not found", actionName)
	}
	resultSvc, ok := node.Service(actionName + "/_action/get_result")
	if !ok {
		t.Fatalf("result service %q not found", actionName)
	}
	feedbackPub, ok := node.Publisher(actionName + "/_action/feedback")
	if !ok {
		t.Fatalf("feedback publisher %q not found", actionName)
	}
	return &demoClient{
		node:          node,
		goalService:   goalSvc,
		cancelService: cancelSvc,
		resultService: resultSvc,
		feedback:      feedbackPub,
	}
}

func (c *demoClient) sendGoal(req demoGoalRequest) demoGoalResponse {
	if err := c.goalService.Submit(req); err != nil {
		panic(err)
	}
	resp := <-c.goalService.Sent()
	return resp.(demoGoalResponse)
}

func (c *demoClient) cancel(info goalhandle.GoalInfo) action.CancelResponse {
	if err := c.cancelService.Submit(info); err != nil {
		panic(err)
	}
	resp := <-c.cancelService.Sent()
	return resp.(action.CancelResponse)
}

func (c *demoClient) getResult(id uuid.UUID) demoResultResponse {
	if err := c.resultService.Submit(demoResultRequest{UUID: id}); err != nil {
		panic(err)
	}
	resp := <-c.resultService.Sent()
	return resp.(demoResultResponse)
}

// serveOneGoal drains the goal service once, accepts the request, and
// responds — standing in for the execute-callback dispatch a generated
// server would perform around AcceptNewGoal. Runs on its own goroutine in
// the test below, so it reports failure through the returned error rather
// than *testing.T.
func serveOneGoal(s *action.ServerState, id uuid.UUID) error {
	var out any
	ok, err := s.TakeGoalRequest(&out)
	if err != nil || !ok {
		return fmt.Errorf("TakeGoalRequest: ok=%v err=%w", ok, err)
	}
	req := out.(demoGoalRequest)
	_ = req.Order

	if _, err := s.AcceptNewGoal(goalhandle.GoalInfo{UUID: id}); err != nil {
		return fmt.Errorf("AcceptNewGoal: %w", err)
	}
	if err := s.SendGoalResponse(demoGoalResponse{Accepted: true}); err != nil {
		return fmt.Errorf("SendGoalResponse: %w", err)
	}
	return nil
}

func serveOneCancel(s *action.ServerState) error {
	var out any
	ok, err := s.TakeCancelRequest(&out)
	if err != nil || !ok {
		return fmt.Errorf("TakeCancelRequest: ok=%v err=%w", ok, err)
	}
	req := out.(goalhandle.GoalInfo)

	resp, err := s.ProcessCancelRequest(req)
	if err != nil {
		return fmt.Errorf("ProcessCancelRequest: %w", err)
	}
	if err := s.SendCancelResponse(resp); err != nil {
		return fmt.Errorf("SendCancelResponse: %w", err)
	}
	return nil
}

func serveOneResult(s *action.ServerState, sequence []int32) error {
	var out any
	ok, err := s.TakeResultRequest(&out)
	if err != nil || !ok {
		return fmt.Errorf("TakeResultRequest: ok=%v err=%w", ok, err)
	}
	_ = out.(demoResultRequest)
	if err := s.SendResultResponse(demoResultResponse{Sequence: sequence}); err != nil {
		return fmt.Errorf("SendResultResponse: %w", err)
	}
	return nil
}

// TestEndToEndGoalLifecycle drives a full accept/feedback/cancel/result
// round trip across the in-process transport, the shape
// libtest_simple_action's client/server pair exercised against a real
// SimpleActionServer, here against the service-based protocol instead.
func TestEndToEndGoalLifecycle(t *testing.T) {
	node := local.New("demo_node", nil)
	var s action.ServerState
	if err := s.Init(node, clock.SystemClock{}, "/fibonacci", action.DefaultServerOptions(), nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer s.Fini()

	client := newDemoClient(t, node, "/fibonacci")
	id := uuid.New()

	serveErrs := make(chan error, 1)
	go func() { serveErrs <- serveOneGoal(&s, id) }()
	goalResp := client.sendGoal(demoGoalRequest{UUID: id, Order: 7})
	if err := <-serveErrs; err != nil {
		t.Fatalf("serveOneGoal: %v", err)
	}
	if !goalResp.Accepted {
		t.Fatalf("expected the goal to be accepted")
	}

	handles, err := s.GoalHandles()
	if err != nil {
		t.Fatalf("GoalHandles: %v", err)
	}
	if len(handles) != 1 || handles[0].Info().UUID != id {
		t.Fatalf("expected exactly the accepted goal to be tracked")
	}
	if _, err := handles[0].Transition(goalhandle.Execute); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if err := s.PublishFeedback([]int32{0, 1, 1}); err != nil {
		t.Fatalf("PublishFeedback: %v", err)
	}
	select {
	case fb := <-client.feedback.Published():
		if seq, ok := fb.([]int32); !ok || len(seq) != 3 {
			t.Fatalf("feedback = %v, want a 3-element sequence", fb)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for feedback")
	}

	go func() { serveErrs <- serveOneCancel(&s) }()
	cancelResp := client.cancel(goalhandle.GoalInfo{UUID: id})
	if err := <-serveErrs; err != nil {
		t.Fatalf("serveOneCancel: %v", err)
	}
	if len(cancelResp.GoalsCanceling) != 1 || cancelResp.GoalsCanceling[0].UUID != id {
		t.Fatalf("expected the goal to be in the canceling response, got %v", cancelResp.GoalsCanceling)
	}
	if handles[0].Status() != goalhandle.Canceling {
		t.Fatalf("status = %s, want CANCELING", handles[0].Status())
	}
	if _, err := handles[0].Transition(goalhandle.CancelComplete); err != nil {
		t.Fatalf("CancelComplete: %v", err)
	}

	go func() { serveErrs <- serveOneResult(&s, []int32{0, 1, 1, 2, 3, 5, 8}) }()
	resultResp := client.getResult(id)
	if err := <-serveErrs; err != nil {
		t.Fatalf("serveOneResult: %v", err)
	}
	if len(resultResp.Sequence) != 7 {
		t.Fatalf("result sequence length = %d, want 7", len(resultResp.Sequence))
	}

	statusEntries, err := s.GetGoalStatusArray()
	if err != nil {
		t.Fatalf("GetGoalStatusArray: %v", err)
	}
	if len(statusEntries) != 1 || statusEntries[0].State != goalhandle.Canceled {
		t.Fatalf("status array = %v, want one CANCELED entry", statusEntries)
	}
}
