package main

import (
	"fmt"
	"os"
	"time"

	"github.com/buger/jsonparser"

	"github.com/team-rocos/rclactiongo/action"
)

// loadOptionsFile reads a JSON document of the shape
//
//	{"result_timeout_ms": 900000, "service_depth": 10, "status_depth": 1}
//
// and applies any present field on top of base, the same token-walking
// jsonparser.Get style used elsewhere in this repo for incoming message
// fields rather than unmarshaling into an intermediate struct.
func loadOptionsFile(path string, base action.ServerOptions) (action.ServerOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read options file: %w", err)
	}

	if ms, err := jsonparser.GetInt(data, "result_timeout_ms"); err == nil {
		base.ResultTimeout = time.Duration(ms) * time.Millisecond
	} else if err != jsonparser.KeyPathNotFoundError {
		return base, fmt.Errorf("read result_timeout_ms: %w", err)
	}

	if depth, err := jsonparser.GetInt(data, "service_depth"); err == nil {
		d := int(depth)
		base.GoalServiceQoS.Depth = d
		base.CancelServiceQoS.Depth = d
		base.ResultServiceQoS.Depth = d
	} else if err != jsonparser.KeyPathNotFoundError {
		return base, fmt.Errorf("read service_depth: %w", err)
	}

	if depth, err := jsonparser.GetInt(data, "status_depth"); err == nil {
		base.StatusTopicQoS.Depth = int(depth)
	} else if err != jsonparser.KeyPathNotFoundError {
		return base, fmt.Errorf("read status_depth: %w", err)
	}

	return base, nil
}
