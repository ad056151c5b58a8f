package teleop

import (
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
	"github.com/open-teleop/teleop-bridge/pkg/teleoppb"
)

// Translate fills in absent vectors with zero and returns the Twist to publish.
// Linear and angular are handled independently; a present zero vector and an
// absent one give the same result.
func Translate(cmd Command) geometry_msgs.Twist {
	return geometry_msgs.Twist{
		Linear:  vectorOrZero(cmd.Linear),
		Angular: vectorOrZero(cmd.Angular),
	}
}

// CommandFromProto converts an RPC request, keeping field presence and
// widening components to float64.
func CommandFromProto(req *teleoppb.CommandRequest) Command {
	var cmd Command
	if v := req.GetLinear(); v != nil {
		cmd.Linear = vectorFromProto(v)
	}
	if v := req.GetAngular(); v != nil {
		cmd.Angular = vectorFromProto(v)
	}
	return cmd
}

func vectorOrZero(v *geometry_msgs.Vector3) geometry_msgs.Vector3 {
	if v == nil {
		return geometry_msgs.Vector3{}
	}
	return *v
}

func vectorFromProto(v *teleoppb.Vector3) *geometry_msgs.Vector3 {
	return &geometry_msgs.Vector3{
		X: float64(v.GetX()),
		Y: float64(v.GetY()),
		Z: float64(v.GetZ()),
	}
}
