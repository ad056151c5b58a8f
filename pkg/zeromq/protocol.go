package zeromq

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/open-teleop/teleop-bridge/pkg/middleware"
)

// Control topics. Data frames use the ROS topic name itself.
const (
	TopicAdvertise        = "bridge.advertise"
	TopicWithdraw         = "bridge.withdraw"
	TopicGatewayPrefix    = "gateway."
	TopicGatewayHeartbeat = "gateway.heartbeat"
)

// Advertisement announces a publisher to gateways so they can create the
// matching ROS2 publisher on their side.
type Advertisement struct {
	Node        string                `msgpack:"node"`
	NodeID      string                `msgpack:"node_id"`
	Namespace   string                `msgpack:"namespace,omitempty"`
	Topic       string                `msgpack:"topic"`
	MessageType string                `msgpack:"message_type"`
	QoS         middleware.QosProfile `msgpack:"qos"`
	RosDistro   string                `msgpack:"ros_distro"`
	TimestampNs int64                 `msgpack:"timestamp_ns"`
}

// Heartbeat is sent periodically by every live gateway.
type Heartbeat struct {
	GatewayID   string `msgpack:"gateway_id"`
	RobotID     string `msgpack:"robot_id"`
	TimestampNs int64  `msgpack:"timestamp_ns"`
}

// DecodeHeartbeat parses a heartbeat frame.
func DecodeHeartbeat(data []byte) (Heartbeat, error) {
	var hb Heartbeat
	if err := msgpack.Unmarshal(data, &hb); err != nil {
		return Heartbeat{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if hb.GatewayID == "" {
		return Heartbeat{}, fmt.Errorf("%w: heartbeat without gateway_id", ErrInvalidMessage)
	}
	return hb, nil
}
