// Package zeromq implements a middleware.Node that reaches ROS2 through the
// Open-Teleop gateway over ZeroMQ.
package zeromq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	zmq "github.com/pebbe/zmq4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/open-teleop/teleop-bridge/pkg/config"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
)

// Common errors
var (
	ErrInvalidMessage = errors.New("invalid message format")
)

// Ensure Node implements the middleware interfaces
var (
	_ middleware.Node               = (*Node)(nil)
	_ middleware.LivelinessReporter = (*Node)(nil)
)

// messageSender publishes multipart [topic, payload] frames on a PUB socket
type messageSender struct {
	socket   *zmq.Socket
	endpoint string
	running  bool
	mu       sync.Mutex
}

// closeLinger is how long queued withdrawals may take to flush on close.
const closeLinger = 100 * time.Millisecond

func newMessageSender(ctx *zmq.Context, address string) (*messageSender, error) {
	socket, err := ctx.NewSocket(zmq.PUB)
	if err != nil {
		return nil, fmt.Errorf("failed to create PUB socket: %w", err)
	}

	if err := socket.SetLinger(0); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to set linger option: %w", err)
	}

	if err := socket.Bind(address); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to bind to %s: %w", address, err)
	}

	// Resolves wildcard ports such as tcp://127.0.0.1:*
	endpoint, err := socket.GetLastEndpoint()
	if err != nil {
		endpoint = address
	}

	return &messageSender{
		socket:   socket,
		endpoint: endpoint,
		running:  true,
	}, nil
}

// publish sends two frames in sequence (topic first, then payload)
func (s *messageSender) publish(topic string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return middleware.ErrNodeClosed
	}

	if _, err := s.socket.Send(topic, zmq.SNDMORE); err != nil {
		return fmt.Errorf("failed to send topic: %w", err)
	}
	if _, err := s.socket.SendBytes(payload, 0); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (s *messageSender) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	if s.socket != nil {
		s.socket.SetLinger(closeLinger)
		s.socket.Close()
		s.socket = nil
	}
}

// Node is a middleware node whose publishers forward CDR messages to ROS2
// gateways. Gateways announce themselves with heartbeats, which are
// processed during SpinOnce.
type Node struct {
	cfg        *config.MiddlewareConfig
	id         string
	ctx        *zmq.Context
	sender     *messageSender
	listener   *heartbeatListener
	peers      *peerTable
	publishers map[string]*Publisher
	logger     customlog.Logger

	lastAdvertise time.Time
	closed        bool
}

// NewNode creates the ZeroMQ sockets described by cfg.ZeroMQ.
func NewNode(cfg *config.MiddlewareConfig, logger customlog.Logger) (*Node, error) {
	ctx, err := zmq.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create ZMQ context: %w", err)
	}

	sender, err := newMessageSender(ctx, cfg.ZeroMQ.PublishBindAddress)
	if err != nil {
		ctx.Term()
		return nil, err
	}

	listener, err := newHeartbeatListener(ctx, cfg.ZeroMQ.GatewaySubscribeAddress, logger)
	if err != nil {
		sender.close()
		ctx.Term()
		return nil, err
	}

	n := &Node{
		cfg:        cfg,
		id:         uuid.NewString(),
		ctx:        ctx,
		sender:     sender,
		listener:   listener,
		peers:      newPeerTable(cfg.ZeroMQ.GatewayTimeout()),
		publishers: make(map[string]*Publisher),
		logger:     logger.WithField("node", cfg.NodeName),
	}

	n.logger.Infof("ZeroMQ node %s publishing on %s", n.id, sender.endpoint)
	return n, nil
}

// Name returns the ROS node name.
func (n *Node) Name() string {
	return n.cfg.NodeName
}

// ID identifies this node instance to gateways.
func (n *Node) ID() string {
	return n.id
}

// PublishEndpoint returns the resolved address of the PUB socket.
func (n *Node) PublishEndpoint() string {
	return n.sender.endpoint
}

// CreatePublisher creates a publisher for topic and advertises it to gateways.
// An existing publisher for the same topic is replaced.
func (n *Node) CreatePublisher(topic, messageType string, qos middleware.QosProfile) (middleware.Publisher, error) {
	if n.closed {
		return nil, middleware.ErrNodeClosed
	}
	if err := qos.Validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		node:        n,
		topic:       topic,
		messageType: messageType,
		qos:         qos,
	}

	if err := n.advertise(p); err != nil {
		return nil, err
	}

	if old, ok := n.publishers[topic]; ok {
		old.closed = true
	}
	n.publishers[topic] = p

	n.logger.Infof("Created publisher for %s (%s, qos %s)", topic, messageType, qos)
	return p, nil
}

// SpinOnce processes gateway heartbeats for up to timeout, expires silent
// gateways and re-advertises publishers when due.
func (n *Node) SpinOnce(timeout time.Duration) error {
	if n.closed {
		return middleware.ErrNodeClosed
	}

	heartbeats, err := n.listener.receive(timeout)

	now := time.Now()
	discovered := false
	for _, hb := range heartbeats {
		if n.peers.update(hb, now) {
			n.logger.Infof("Discovered gateway %s (robot %s)", hb.GatewayID, hb.RobotID)
			discovered = true
		}
	}
	for _, id := range n.peers.expire(now) {
		n.logger.Warnf("Gateway %s timed out", id)
	}

	if discovered || now.Sub(n.lastAdvertise) >= n.cfg.ZeroMQ.AdvertiseInterval() {
		if advErr := n.advertiseAll(); advErr != nil && err == nil {
			err = advErr
		}
	}

	return err
}

// Peers returns the gateways currently considered alive.
func (n *Node) Peers() []middleware.PeerInfo {
	return n.peers.list()
}

// Close withdraws all publishers and releases the sockets.
func (n *Node) Close() error {
	if n.closed {
		return nil
	}

	for _, p := range n.publishers {
		if err := p.Close(); err != nil {
			n.logger.Warnf("Failed to withdraw %s: %v", p.topic, err)
		}
	}

	n.closed = true
	n.listener.close()
	n.sender.close()

	if n.ctx != nil {
		if err := n.ctx.Term(); err != nil {
			return fmt.Errorf("failed to terminate ZMQ context: %w", err)
		}
		n.ctx = nil
	}

	n.logger.Infof("ZeroMQ node stopped")
	return nil
}

func (n *Node) advertisement(p *Publisher) Advertisement {
	return Advertisement{
		Node:        n.cfg.NodeName,
		NodeID:      n.id,
		Namespace:   n.cfg.Namespace,
		Topic:       p.topic,
		MessageType: p.messageType,
		QoS:         p.qos,
		RosDistro:   n.cfg.RosDistro,
		TimestampNs: time.Now().UnixNano(),
	}
}

func (n *Node) advertise(p *Publisher) error {
	data, err := msgpack.Marshal(n.advertisement(p))
	if err != nil {
		return fmt.Errorf("failed to marshal advertisement: %w", err)
	}
	if err := n.sender.publish(TopicAdvertise, data); err != nil {
		return fmt.Errorf("failed to advertise %s: %w", p.topic, err)
	}
	return nil
}

func (n *Node) advertiseAll() error {
	n.lastAdvertise = time.Now()
	for _, p := range n.publishers {
		if err := n.advertise(p); err != nil {
			return err
		}
	}
	return nil
}
