package teleop

import (
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
)

// Command is an external velocity command. A nil vector means the field
// was absent on the wire.
type Command struct {
	Linear  *geometry_msgs.Vector3 `json:"linear,omitempty"`
	Angular *geometry_msgs.Vector3 `json:"angular,omitempty"`
}

// Ack acknowledges one command.
type Ack struct {
	Success bool `json:"success"`
}
