// Package rosparser decodes serialized ROS2 messages into generic JSON-ready maps.
package rosparser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
)

// Error represents an error from the ROS parser.
type Error struct {
	Code    int
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("ROS Parser error %d: %s", e.Code, e.Message)
}

// Constants for error codes
const (
	Success            = 0
	ErrorInvalidMsg    = 2
	ErrorUnsupported   = 3
	ErrorSerialization = 4
)

// Message is implemented by every registered message type.
type Message interface {
	UnmarshalCDR(data []byte) error
}

// decoders maps message types to factories of pointers whose JSON encoding
// describes the message.
var decoders = map[string]func() Message{
	geometry_msgs.TypeTwist:   func() Message { return &geometry_msgs.Twist{} },
	geometry_msgs.TypeVector3: func() Message { return &geometry_msgs.Vector3{} },
}

// SupportedTypes lists the message types ParseToJSON understands.
func SupportedTypes() []string {
	types := make([]string, 0, len(decoders))
	for t := range decoders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ParseToJSON parses a CDR-serialized ROS2 message and returns its JSON representation.
func ParseToJSON(messageType string, messageData []byte) (map[string]interface{}, error) {
	if len(messageData) == 0 {
		return nil, &Error{
			Code:    ErrorInvalidMsg,
			Message: "Empty message data",
		}
	}

	factory, ok := decoders[messageType]
	if !ok {
		return nil, &Error{
			Code:    ErrorUnsupported,
			Message: fmt.Sprintf("Unsupported message type: %s", messageType),
		}
	}

	msg := factory()
	if err := msg.UnmarshalCDR(messageData); err != nil {
		return nil, &Error{
			Code:    ErrorInvalidMsg,
			Message: fmt.Sprintf("failed to decode %s: %v", messageType, err),
		}
	}

	// Round-trip through encoding/json so callers get the same generic shape
	// regardless of the concrete Go type.
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, &Error{
			Code:    ErrorSerialization,
			Message: err.Error(),
		}
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON result: %w", err)
	}
	return result, nil
}
