package zeromq

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/open-teleop/teleop-bridge/pkg/envelope"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
)

// Publisher sends one topic's messages to gateways as OttMessage envelopes.
type Publisher struct {
	node        *Node
	topic       string
	messageType string
	qos         middleware.QosProfile
	closed      bool
}

// Topic returns the ROS topic name.
func (p *Publisher) Topic() string {
	return p.topic
}

// Publish serializes msg to CDR, wraps it and sends it on the topic.
func (p *Publisher) Publish(msg middleware.Message) error {
	if p.closed {
		return middleware.ErrPublisherClosed
	}
	if msg.TypeName() != p.messageType {
		return fmt.Errorf("publisher for %s cannot send %s", p.messageType, msg.TypeName())
	}

	data, err := msg.MarshalCDR()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", msg.TypeName(), err)
	}

	env := envelope.NewCDR(p.topic, p.messageType, data)
	if err := p.node.sender.publish(p.topic, envelope.Build(env)); err != nil {
		return err
	}

	p.node.logger.Debugf("Published %s on %s (message_id=%s, %d bytes)", p.messageType, p.topic, env.MessageID, len(data))
	return nil
}

// Close withdraws the publisher from gateways.
func (p *Publisher) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	n := p.node
	if n.publishers[p.topic] == p {
		delete(n.publishers, p.topic)
	}

	data, err := msgpack.Marshal(n.advertisement(p))
	if err != nil {
		return fmt.Errorf("failed to marshal withdrawal: %w", err)
	}
	return n.sender.publish(TopicWithdraw, data)
}
