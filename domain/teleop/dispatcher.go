package teleop

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
	"github.com/open-teleop/teleop-bridge/pkg/topics"
)

// Common errors
var (
	ErrDispatcherStopped = errors.New("command dispatcher stopped")
	ErrAlreadyRunning    = errors.New("command dispatcher already running")
)

// Operations reported in DispatchError
const (
	OpCreatePublisher = "create publisher"
	OpPublish         = "publish"
)

// DispatchError reports a failed publish attempt. The dispatcher keeps
// serving after returning one.
type DispatchError struct {
	Op    string
	Topic string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Topic, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Defaults for Options
const (
	DefaultTopic        = "/cmd_vel"
	DefaultTickDuration = 100 * time.Millisecond
	DefaultBurst        = 64
)

// Options configures a Dispatcher.
type Options struct {
	Topic        string
	QoS          middleware.QosProfile
	TickDuration time.Duration
	// Burst bounds how many waiting operations run between two ticks.
	Burst int
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		Topic:        DefaultTopic,
		QoS:          middleware.DefaultQosProfile(),
		TickDuration: DefaultTickDuration,
		Burst:        DefaultBurst,
	}
}

// Status is a snapshot of the dispatcher and its node.
type Status struct {
	NodeName   string                `json:"node_name"`
	Topic      string                `json:"topic"`
	QoS        middleware.QosProfile `json:"qos"`
	TickMs     int64                 `json:"tick_ms"`
	Published  uint64                `json:"published"`
	Failed     uint64                `json:"failed"`
	Spins      uint64                `json:"spins"`
	SpinErrors uint64                `json:"spin_errors"`
	Publishers int                   `json:"publishers"`
	Peers      []middleware.PeerInfo `json:"peers"`
}

// Dispatcher owns the middleware node. A single goroutine, Run, performs
// every node call: queued operations from Handle and Status interleaved with
// event-loop ticks. This gives node operations a strict total order.
type Dispatcher struct {
	node     middleware.Node
	opts     Options
	registry *topics.TopicRegistry
	logger   customlog.Logger

	ops     chan func()
	done    chan struct{}
	running int32

	// owned by the Run goroutine
	publishers map[string]middleware.Publisher
	published  uint64
	failed     uint64
	spins      uint64
	spinErrors uint64
}

// NewDispatcher creates a dispatcher for node. registry may be nil.
func NewDispatcher(node middleware.Node, opts Options, registry *topics.TopicRegistry, logger customlog.Logger) *Dispatcher {
	def := DefaultOptions()
	if opts.Topic == "" {
		opts.Topic = def.Topic
	}
	if opts.QoS == (middleware.QosProfile{}) {
		opts.QoS = def.QoS
	}
	if opts.TickDuration <= 0 {
		opts.TickDuration = def.TickDuration
	}
	if opts.Burst <= 0 {
		opts.Burst = def.Burst
	}

	if registry != nil {
		registry.Register(opts.Topic, geometry_msgs.TypeTwist, topics.DirectionOutbound)
	}

	return &Dispatcher{
		node:       node,
		opts:       opts,
		registry:   registry,
		logger:     logger.WithField("topic", opts.Topic),
		ops:        make(chan func()),
		done:       make(chan struct{}),
		publishers: make(map[string]middleware.Publisher),
	}
}

// Topic returns the topic commands are published on.
func (d *Dispatcher) Topic() string {
	return d.opts.Topic
}

// Run services the node until ctx is cancelled. Each iteration runs the
// operations already waiting, up to Options.Burst, then one event-loop tick.
// After Run returns every Handle call fails with ErrDispatcherStopped.
// Run does not close the node.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&d.running, 0, 1) {
		return ErrAlreadyRunning
	}
	defer close(d.done)
	defer d.closePublishers()

	d.logger.Infof("Dispatcher started on node %s (tick %v)", d.node.Name(), d.opts.TickDuration)

	for {
		select {
		case <-ctx.Done():
			d.logger.Infof("Dispatcher stopping: %d published, %d failed, %d ticks", d.published, d.failed, d.spins)
			return nil
		default:
		}

		d.drain()

		if err := d.node.SpinOnce(d.opts.TickDuration); err != nil {
			d.spinErrors++
			d.logger.Warnf("Event loop tick failed: %v", err)
		}
		d.spins++
	}
}

// drain runs waiting operations without blocking
func (d *Dispatcher) drain() {
	for i := 0; i < d.opts.Burst; i++ {
		select {
		case op := <-d.ops:
			op()
		default:
			return
		}
	}
}

// submit hands op to the Run goroutine. ctx only bounds the wait for the
// hand-off; once accepted, op runs to completion.
func (d *Dispatcher) submit(ctx context.Context, op func()) error {
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}

	select {
	case d.ops <- op:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle translates cmd and publishes it once on the configured topic.
// A publisher or publish failure returns Ack{Success: false} with a
// *DispatchError.
func (d *Dispatcher) Handle(ctx context.Context, cmd Command) (Ack, error) {
	twist := Translate(cmd)
	commandID := uuid.NewString()

	result := make(chan error, 1)
	err := d.submit(ctx, func() {
		result <- d.publish(commandID, twist)
	})
	if err != nil {
		return Ack{Success: false}, err
	}

	if err := <-result; err != nil {
		return Ack{Success: false}, err
	}
	return Ack{Success: true}, nil
}

// Status returns counters and node liveliness, read on the Run goroutine.
func (d *Dispatcher) Status(ctx context.Context) (Status, error) {
	result := make(chan Status, 1)
	if err := d.submit(ctx, func() { result <- d.snapshot() }); err != nil {
		return Status{}, err
	}
	return <-result, nil
}

func (d *Dispatcher) publish(commandID string, twist geometry_msgs.Twist) error {
	logger := d.logger.WithField("command_id", commandID)
	topic := d.opts.Topic

	pub, err := d.publisher(topic)
	if err != nil {
		return d.fail(logger, &DispatchError{Op: OpCreatePublisher, Topic: topic, Err: err})
	}

	if err := pub.Publish(twist); err != nil {
		// The next command recreates the publisher
		delete(d.publishers, topic)
		if closeErr := pub.Close(); closeErr != nil {
			logger.Debugf("Closing failed publisher: %v", closeErr)
		}
		return d.fail(logger, &DispatchError{Op: OpPublish, Topic: topic, Err: err})
	}

	d.published++
	if d.registry != nil {
		if payload, err := twist.MarshalCDR(); err != nil {
			logger.Debugf("Not recording payload for %s: %v", topic, err)
		} else {
			d.registry.RecordPublish(topic, payload, time.Now())
		}
	}
	logger.Infof("Published %s", twist)
	return nil
}

func (d *Dispatcher) fail(logger customlog.Logger, err *DispatchError) error {
	d.failed++
	if d.registry != nil {
		d.registry.RecordFailure(err.Topic, err.Err)
	}
	logger.Errorf("Command dropped: %v", err)
	return err
}

// publisher returns the cached publisher for topic, creating it if needed
func (d *Dispatcher) publisher(topic string) (middleware.Publisher, error) {
	if pub, ok := d.publishers[topic]; ok {
		return pub, nil
	}

	pub, err := d.node.CreatePublisher(topic, geometry_msgs.TypeTwist, d.opts.QoS)
	if err != nil {
		return nil, err
	}
	d.publishers[topic] = pub
	d.logger.Debugf("Created publisher with qos %s", d.opts.QoS)
	return pub, nil
}

func (d *Dispatcher) snapshot() Status {
	s := Status{
		NodeName:   d.node.Name(),
		Topic:      d.opts.Topic,
		QoS:        d.opts.QoS,
		TickMs:     d.opts.TickDuration.Milliseconds(),
		Published:  d.published,
		Failed:     d.failed,
		Spins:      d.spins,
		SpinErrors: d.spinErrors,
		Publishers: len(d.publishers),
		Peers:      []middleware.PeerInfo{},
	}
	if lr, ok := d.node.(middleware.LivelinessReporter); ok {
		s.Peers = append(s.Peers, lr.Peers()...)
	}
	return s
}

func (d *Dispatcher) closePublishers() {
	for topic, pub := range d.publishers {
		if err := pub.Close(); err != nil {
			d.logger.Warnf("Failed to close publisher for %s: %v", topic, err)
		}
		delete(d.publishers, topic)
	}
}
