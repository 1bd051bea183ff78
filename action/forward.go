package action

import (
	"github.com/team-rocos/rclactiongo/actionerr"
	"github.com/team-rocos/rclactiongo/transport"
)

// TakeGoalRequest pulls a pending request off the goal service into req.
// When no request is pending it returns false with an
// ActionServerTakeFailed error, so callers can treat it as the expected
// "nothing to do yet" outcome rather than a real failure.
func (s *ServerState) TakeGoalRequest(req any) (bool, error) {
	return s.take(s.goalService, req)
}

// SendGoalResponse forwards resp on the goal service.
func (s *ServerState) SendGoalResponse(resp any) error {
	return s.send(s.goalService, resp)
}

// TakeCancelRequest pulls a pending request off the cancel service.
func (s *ServerState) TakeCancelRequest(req any) (bool, error) {
	return s.take(s.cancelService, req)
}

// SendCancelResponse forwards resp on the cancel service.
func (s *ServerState) SendCancelResponse(resp any) error {
	return s.send(s.cancelService, resp)
}

// TakeResultRequest pulls a pending request off the result service.
func (s *ServerState) TakeResultRequest(req any) (bool, error) {
	return s.take(s.resultService, req)
}

// SendResultResponse forwards resp on the result service.
func (s *ServerState) SendResultResponse(resp any) error {
	return s.send(s.resultService, resp)
}

func (s *ServerState) take(svc transport.Service, out any) (bool, error) {
	if !s.IsValid() {
		return false, s.invalidErr()
	}
	ok, err := svc.TakeRequest(out)
	if err != nil {
		if err == transport.ErrNameInvalid {
			return false, actionerr.Wrap(actionerr.ActionNameInvalid, err, "service name invalid")
		}
		return false, actionerr.Wrap(actionerr.Error, err, "failed to take request")
	}
	if !ok {
		return false, actionerr.New(actionerr.ActionServerTakeFailed, "no request available")
	}
	return true, nil
}

func (s *ServerState) send(svc transport.Service, resp any) error {
	if !s.IsValid() {
		return s.invalidErr()
	}
	if err := svc.SendResponse(resp); err != nil {
		if err == transport.ErrNameInvalid {
			return actionerr.Wrap(actionerr.ActionNameInvalid, err, "service name invalid")
		}
		return actionerr.Wrap(actionerr.Error, err, "failed to send response")
	}
	return nil
}
