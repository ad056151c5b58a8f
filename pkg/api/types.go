package api

import (
	"github.com/open-teleop/teleop-bridge/domain/teleop"
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
)

// --- Data Structures for WebSocket Messages ---

// TwistMsg is a velocity command sent by a web client, shaped like
// geometry_msgs/Twist. Either vector may be omitted.
type TwistMsg struct {
	Seq     uint64                 `json:"seq,omitempty"`
	Linear  *geometry_msgs.Vector3 `json:"linear,omitempty"`
	Angular *geometry_msgs.Vector3 `json:"angular,omitempty"`
}

// Command converts the message for the dispatcher.
func (m TwistMsg) Command() teleop.Command {
	return teleop.Command{Linear: m.Linear, Angular: m.Angular}
}

// CommandReply acknowledges one TwistMsg. Seq echoes the request.
type CommandReply struct {
	Seq     uint64 `json:"seq,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
