package middleware

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Published is one message recorded by a LoopbackNode.
type Published struct {
	Topic       string
	MessageType string
	Data        []byte
	Message     Message
	At          time.Time
}

// LoopbackNode is an in-process Node that records every publish instead of
// sending it anywhere. Failures and slow publishes can be injected.
//
// Like every Node it expects serialized calls; it counts calls that overlap
// so callers can verify their own serialization.
type LoopbackNode struct {
	name string

	mu           sync.Mutex
	published    []Published
	publishers   map[string]*loopbackPublisher
	createErr    error
	publishErr   error
	publishDelay time.Duration
	closed       bool

	active   int32
	overlaps int64
	spins    int64
}

// Ensure LoopbackNode implements the Node interfaces
var (
	_ Node               = (*LoopbackNode)(nil)
	_ LivelinessReporter = (*LoopbackNode)(nil)
)

// NewLoopbackNode creates a node with the given name.
func NewLoopbackNode(name string) *LoopbackNode {
	return &LoopbackNode{
		name:       name,
		publishers: make(map[string]*loopbackPublisher),
	}
}

// Name returns the node name.
func (n *LoopbackNode) Name() string {
	return n.name
}

// CreatePublisher registers a publisher for topic.
func (n *LoopbackNode) CreatePublisher(topic, messageType string, qos QosProfile) (Publisher, error) {
	defer n.enter()()

	if err := qos.Validate(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, ErrNodeClosed
	}
	if n.createErr != nil {
		return nil, n.createErr
	}

	p := &loopbackPublisher{node: n, topic: topic, messageType: messageType, qos: qos}
	n.publishers[topic] = p
	return p, nil
}

// SpinOnce waits for timeout. The loopback node has no background work.
func (n *LoopbackNode) SpinOnce(timeout time.Duration) error {
	defer n.enter()()

	n.mu.Lock()
	closed := n.closed
	n.mu.Unlock()
	if closed {
		return ErrNodeClosed
	}

	if timeout > 0 {
		time.Sleep(timeout)
	}
	atomic.AddInt64(&n.spins, 1)
	return nil
}

// Close marks the node closed. Later calls fail with ErrNodeClosed.
func (n *LoopbackNode) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

// Peers reports the node itself as its only peer.
func (n *LoopbackNode) Peers() []PeerInfo {
	return []PeerInfo{{ID: "loopback", LastSeen: time.Now()}}
}

// FailCreate makes CreatePublisher return err until cleared with nil.
func (n *LoopbackNode) FailCreate(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.createErr = err
}

// FailPublish makes Publish return err until cleared with nil.
func (n *LoopbackNode) FailPublish(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.publishErr = err
}

// SetPublishDelay makes every publish block for d before completing.
func (n *LoopbackNode) SetPublishDelay(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.publishDelay = d
}

// Published returns a copy of every message recorded so far, in order.
func (n *LoopbackNode) Published() []Published {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Published, len(n.published))
	copy(out, n.published)
	return out
}

// Spins returns how many event-loop ticks completed.
func (n *LoopbackNode) Spins() int64 {
	return atomic.LoadInt64(&n.spins)
}

// Overlaps returns how many calls started while another call was running.
func (n *LoopbackNode) Overlaps() int64 {
	return atomic.LoadInt64(&n.overlaps)
}

// PublisherCount returns how many publishers were created and not closed.
func (n *LoopbackNode) PublisherCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.publishers)
}

func (n *LoopbackNode) enter() func() {
	if !atomic.CompareAndSwapInt32(&n.active, 0, 1) {
		atomic.AddInt64(&n.overlaps, 1)
		return func() {}
	}
	return func() { atomic.StoreInt32(&n.active, 0) }
}

type loopbackPublisher struct {
	node        *LoopbackNode
	topic       string
	messageType string
	qos         QosProfile
	closed      bool
}

func (p *loopbackPublisher) Topic() string {
	return p.topic
}

func (p *loopbackPublisher) Publish(msg Message) error {
	n := p.node
	defer n.enter()()

	if msg.TypeName() != p.messageType {
		return fmt.Errorf("publisher for %s cannot send %s", p.messageType, msg.TypeName())
	}

	data, err := msg.MarshalCDR()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", msg.TypeName(), err)
	}

	n.mu.Lock()
	delay := n.publishDelay
	n.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	switch {
	case n.closed:
		return ErrNodeClosed
	case p.closed:
		return ErrPublisherClosed
	case n.publishErr != nil:
		return n.publishErr
	}

	n.published = append(n.published, Published{
		Topic:       p.topic,
		MessageType: p.messageType,
		Data:        data,
		Message:     msg,
		At:          time.Now(),
	})
	return nil
}

func (p *loopbackPublisher) Close() error {
	n := p.node
	n.mu.Lock()
	defer n.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if n.publishers[p.topic] == p {
		delete(n.publishers, p.topic)
	}
	return nil
}
