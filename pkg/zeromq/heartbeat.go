package zeromq

import (
	"fmt"
	"sort"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
)

// heartbeatListener receives gateway heartbeats on a SUB socket
type heartbeatListener struct {
	socket *zmq.Socket
	poller *zmq.Poller
	logger customlog.Logger
}

func newHeartbeatListener(ctx *zmq.Context, address string, logger customlog.Logger) (*heartbeatListener, error) {
	socket, err := ctx.NewSocket(zmq.SUB)
	if err != nil {
		return nil, fmt.Errorf("failed to create SUB socket: %w", err)
	}

	if err := socket.SetLinger(0); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to set linger option: %w", err)
	}

	if err := socket.SetSubscribe(TopicGatewayPrefix); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", TopicGatewayPrefix, err)
	}

	if err := socket.Connect(address); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	poller := zmq.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	logger.Infof("Heartbeat listener connected to %s", address)

	return &heartbeatListener{
		socket: socket,
		poller: poller,
		logger: logger,
	}, nil
}

// receive waits up to timeout for the first frame, then drains whatever else
// is already queued without blocking.
func (l *heartbeatListener) receive(timeout time.Duration) ([]Heartbeat, error) {
	var heartbeats []Heartbeat

	wait := timeout
	for {
		sockets, err := l.poller.Poll(wait)
		if err != nil {
			return heartbeats, fmt.Errorf("error polling heartbeat socket: %w", err)
		}
		if len(sockets) == 0 {
			return heartbeats, nil
		}
		wait = 0

		frames, err := l.socket.RecvMessageBytes(0)
		if err != nil {
			return heartbeats, fmt.Errorf("error receiving heartbeat: %w", err)
		}
		if len(frames) != 2 {
			l.logger.Warnf("Dropping gateway message with %d frames", len(frames))
			continue
		}

		topic := string(frames[0])
		if topic != TopicGatewayHeartbeat {
			l.logger.Debugf("Ignoring gateway message on %s", topic)
			continue
		}

		hb, err := DecodeHeartbeat(frames[1])
		if err != nil {
			l.logger.Warnf("Dropping heartbeat: %v", err)
			continue
		}
		heartbeats = append(heartbeats, hb)
	}
}

func (l *heartbeatListener) close() {
	if l.socket != nil {
		l.socket.Close()
		l.socket = nil
	}
}

// peerTable tracks live gateways by id
type peerTable struct {
	timeout time.Duration
	peers   map[string]middleware.PeerInfo
	mu      sync.RWMutex
}

func newPeerTable(timeout time.Duration) *peerTable {
	return &peerTable{
		timeout: timeout,
		peers:   make(map[string]middleware.PeerInfo),
	}
}

// update records hb and reports whether the gateway was not known before.
func (t *peerTable) update(hb Heartbeat, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, known := t.peers[hb.GatewayID]
	t.peers[hb.GatewayID] = middleware.PeerInfo{
		ID:       hb.GatewayID,
		RobotID:  hb.RobotID,
		LastSeen: now,
	}
	return !known
}

// expire drops gateways silent for longer than the timeout and returns their ids.
func (t *peerTable) expire(now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []string
	for id, p := range t.peers {
		if now.Sub(p.LastSeen) > t.timeout {
			delete(t.peers, id)
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	return expired
}

func (t *peerTable) list() []middleware.PeerInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	peers := make([]middleware.PeerInfo, 0, len(t.peers))
	for _, p := range t.peers {
		peers = append(peers, p)
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].ID < peers[j].ID })
	return peers
}
