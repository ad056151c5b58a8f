// Package middleware describes the robotics middleware node the bridge
// publishes through, independent of the transport behind it.
package middleware

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrNodeClosed      = errors.New("middleware node is closed")
	ErrPublisherClosed = errors.New("publisher is closed")
)

// Message is a typed ROS2 message that can serialize itself to CDR.
type Message interface {
	TypeName() string
	MarshalCDR() ([]byte, error)
}

// Publisher sends messages on one topic.
type Publisher interface {
	Topic() string
	Publish(msg Message) error
	Close() error
}

// Node is a connection to the middleware bus. Implementations are not
// safe for concurrent use; callers serialize every call.
type Node interface {
	Name() string
	CreatePublisher(topic, messageType string, qos QosProfile) (Publisher, error)
	// SpinOnce services the node's internal event processing, waiting at
	// most timeout for work to arrive.
	SpinOnce(timeout time.Duration) error
	Close() error
}

// PeerInfo describes a remote participant discovered by the node.
type PeerInfo struct {
	ID       string    `json:"id"`
	RobotID  string    `json:"robot_id,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

// LivelinessReporter is implemented by nodes that track discovered peers.
type LivelinessReporter interface {
	Peers() []PeerInfo
}
