// Package wire is the one concrete "type_support" this repo ships: a
// fixed-layout binary codec for GoalInfo/GoalStatus, and a JSON
// cancel-request parser. Payload serialization is treated as an external
// collaborator; this package exists only because a runnable demo needs
// *some* concrete codec, adapted from ros/byte_decoder_le.go's
// little-endian helpers rather than pulled in from the full dynamic-message
// reflection machinery.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"

	"github.com/team-rocos/rclactiongo/goalhandle"
)

// EncodeGoalInfo writes info as 16 bytes of UUID followed by a
// little-endian int32 sec and uint32 nanosec, mirroring the field order
// GoalInfo itself declares.
func EncodeGoalInfo(buf *bytes.Buffer, info goalhandle.GoalInfo) error {
	if _, err := buf.Write(info.UUID[:]); err != nil {
		return fmt.Errorf("wire: write uuid: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, info.StampSec); err != nil {
		return fmt.Errorf("wire: write stamp sec: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, info.StampNanosec); err != nil {
		return fmt.Errorf("wire: write stamp nanosec: %w", err)
	}
	return nil
}

// DecodeGoalInfo is the inverse of EncodeGoalInfo.
func DecodeGoalInfo(r *bytes.Reader) (goalhandle.GoalInfo, error) {
	var info goalhandle.GoalInfo
	var idBytes [16]byte
	if n, err := r.Read(idBytes[:]); n != 16 || err != nil {
		return info, fmt.Errorf("wire: read uuid: %w", err)
	}
	info.UUID = uuid.UUID(idBytes)
	if err := binary.Read(r, binary.LittleEndian, &info.StampSec); err != nil {
		return info, fmt.Errorf("wire: read stamp sec: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &info.StampNanosec); err != nil {
		return info, fmt.Errorf("wire: read stamp nanosec: %w", err)
	}
	return info, nil
}

// StatusEntry pairs a goal's identity with its current lifecycle state,
// the shape get_goal_status_array snapshots.
type StatusEntry struct {
	Info  goalhandle.GoalInfo
	State goalhandle.State
}

// EncodeStatusArray writes a length-prefixed array of StatusEntry.
func EncodeStatusArray(buf *bytes.Buffer, entries []StatusEntry) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(entries))); err != nil {
		return fmt.Errorf("wire: write status array length: %w", err)
	}
	for _, e := range entries {
		if err := EncodeGoalInfo(buf, e.Info); err != nil {
			return err
		}
		if err := buf.WriteByte(byte(e.State)); err != nil {
			return fmt.Errorf("wire: write status: %w", err)
		}
	}
	return nil
}

// DecodeStatusArray is the inverse of EncodeStatusArray.
func DecodeStatusArray(r *bytes.Reader) ([]StatusEntry, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("wire: read status array length: %w", err)
	}
	entries := make([]StatusEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		info, err := DecodeGoalInfo(r)
		if err != nil {
			return nil, err
		}
		state, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("wire: read status: %w", err)
		}
		entries = append(entries, StatusEntry{Info: info, State: goalhandle.State(state)})
	}
	return entries, nil
}

// ParseCancelRequestJSON extracts the target GoalInfo from a JSON request
// body, e.g. `{"uuid":"...", "stamp_nanos": 1234}`. Either or both fields may be
// absent, yielding the zero-UUID/zero-stamp sentinel the cancel-request
// protocol gives special meaning to. Field extraction uses jsonparser.Get
// directly against the byte buffer, the same token-walking style
// ros/dynamic_message_json.go used for incoming ROS JSON payloads, rather
// than unmarshaling into an intermediate struct.
func ParseCancelRequestJSON(data []byte) (goalhandle.GoalInfo, error) {
	var info goalhandle.GoalInfo

	if idStr, err := jsonparser.GetString(data, "uuid"); err == nil && idStr != "" {
		id, perr := uuid.Parse(idStr)
		if perr != nil {
			return info, fmt.Errorf("wire: parse uuid %q: %w", idStr, perr)
		}
		info.UUID = id
	} else if err != nil && err != jsonparser.KeyPathNotFoundError {
		return info, fmt.Errorf("wire: read uuid field: %w", err)
	}

	if stamp, err := jsonparser.GetInt(data, "stamp_nanos"); err == nil {
		const billion = int64(1e9)
		info.StampSec = int32(stamp / billion)
		info.StampNanosec = uint32(stamp % billion)
	} else if err != jsonparser.KeyPathNotFoundError {
		return info, fmt.Errorf("wire: read stamp_nanos field: %w", err)
	}

	return info, nil
}
