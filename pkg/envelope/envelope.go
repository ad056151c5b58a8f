// Package envelope wraps serialized middleware payloads in the OttMessage
// FlatBuffer exchanged with the ROS2 gateway.
package envelope

import (
	"errors"
	"fmt"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/uuid"

	message "github.com/open-teleop/teleop-bridge/pkg/flatbuffers/open_teleop/message"
)

// Version is the envelope format version written by Build.
const Version byte = 1

// ErrInvalidEnvelope is returned when bytes cannot be read as an OttMessage.
var ErrInvalidEnvelope = errors.New("invalid OttMessage envelope")

// Envelope is the decoded form of an OttMessage.
type Envelope struct {
	Version     byte
	Topic       string
	ContentType message.ContentType
	MessageType string
	MessageID   string
	TimestampNs int64
	Payload     []byte
}

// NewCDR returns an envelope for a CDR-serialized ROS2 message with a fresh
// message id and the current time.
func NewCDR(topic, messageType string, payload []byte) Envelope {
	return Envelope{
		Version:     Version,
		Topic:       topic,
		ContentType: message.ContentTypeROS2_CDR,
		MessageType: messageType,
		MessageID:   uuid.NewString(),
		TimestampNs: time.Now().UnixNano(),
		Payload:     payload,
	}
}

// Build serializes e as an OttMessage FlatBuffer.
func Build(e Envelope) []byte {
	builder := flatbuffers.NewBuilder(64 + len(e.Payload))

	// Vectors and strings must be created before the table is started
	payload := builder.CreateByteVector(e.Payload)
	topic := builder.CreateString(e.Topic)
	messageType := builder.CreateString(e.MessageType)
	messageID := builder.CreateString(e.MessageID)

	version := e.Version
	if version == 0 {
		version = Version
	}

	message.OttMessageStart(builder)
	message.OttMessageAddVersion(builder, version)
	message.OttMessageAddOtt(builder, topic)
	message.OttMessageAddContentType(builder, e.ContentType)
	message.OttMessageAddPayload(builder, payload)
	message.OttMessageAddTimestampNs(builder, e.TimestampNs)
	message.OttMessageAddMessageType(builder, messageType)
	message.OttMessageAddMessageId(builder, messageID)
	root := message.OttMessageEnd(builder)
	message.FinishOttMessageBuffer(builder, root)

	return builder.FinishedBytes()
}

// Parse decodes an OttMessage. The returned payload is a copy.
func Parse(data []byte) (env Envelope, err error) {
	// minimum: root offset + vtable offset
	if len(data) < 8 {
		return Envelope{}, fmt.Errorf("%w: %d bytes", ErrInvalidEnvelope, len(data))
	}

	// The generated accessors index without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			env = Envelope{}
			err = fmt.Errorf("%w: %v", ErrInvalidEnvelope, r)
		}
	}()

	msg := message.GetRootAsOttMessage(data, 0)
	env = Envelope{
		Version:     msg.Version(),
		Topic:       string(msg.Ott()),
		ContentType: msg.ContentType(),
		MessageType: string(msg.MessageType()),
		MessageID:   string(msg.MessageId()),
		TimestampNs: msg.TimestampNs(),
		Payload:     append([]byte(nil), msg.PayloadBytes()...),
	}
	return env, nil
}
