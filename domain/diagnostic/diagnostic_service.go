package diagnostic

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/open-teleop/teleop-bridge/domain/teleop"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/rosparser"
	"github.com/open-teleop/teleop-bridge/pkg/topics"
)

// statusTimeout bounds how long a diagnostics request waits for the dispatcher
const statusTimeout = time.Second

// StatusSource reports dispatcher state. *teleop.Dispatcher implements it.
type StatusSource interface {
	Status(ctx context.Context) (teleop.Status, error)
}

// BridgeDiagnostics is the payload of the diagnostics endpoint
type BridgeDiagnostics struct {
	Timestamp       time.Time                         `json:"timestamp"`
	UptimeSeconds   float64                           `json:"uptime_seconds"`
	Dispatcher      *teleop.Status                    `json:"dispatcher,omitempty"`
	DispatcherError string                            `json:"dispatcher_error,omitempty"`
	Topics          []topics.TopicInfo                `json:"topics"`
	LastMessages    map[string]map[string]interface{} `json:"last_messages"`
	DecodableTypes  []string                          `json:"decodable_types"`
}

// DiagnosticService reports bridge health and traffic
type DiagnosticService struct {
	status   StatusSource
	registry *topics.TopicRegistry
	logger   customlog.Logger
	started  time.Time
}

// NewDiagnosticService creates a new diagnostic service instance
func NewDiagnosticService(status StatusSource, registry *topics.TopicRegistry, logger customlog.Logger) *DiagnosticService {
	return &DiagnosticService{
		status:   status,
		registry: registry,
		logger:   logger,
		started:  time.Now(),
	}
}

// Collect gathers dispatcher state and per-topic statistics. The last
// message on each topic is decoded from its CDR bytes.
func (s *DiagnosticService) Collect(ctx context.Context) BridgeDiagnostics {
	now := time.Now()
	diag := BridgeDiagnostics{
		Timestamp:      now,
		UptimeSeconds:  now.Sub(s.started).Seconds(),
		Topics:         []topics.TopicInfo{},
		LastMessages:   map[string]map[string]interface{}{},
		DecodableTypes: rosparser.SupportedTypes(),
	}

	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	if status, err := s.status.Status(ctx); err != nil {
		diag.DispatcherError = err.Error()
	} else {
		diag.Dispatcher = &status
	}

	if s.registry == nil {
		return diag
	}

	diag.Topics = s.registry.GetTopicStats()
	for _, info := range diag.Topics {
		payload, ok := s.registry.LastPayload(info.Topic)
		if !ok {
			continue
		}
		parsed, err := rosparser.ParseToJSON(info.MessageType, payload)
		if err != nil {
			s.logger.Debugf("Cannot decode last message on %s: %v", info.Topic, err)
			continue
		}
		diag.LastMessages[info.Topic] = parsed
	}
	return diag
}

// GetMetricsHandler handles API requests for bridge diagnostics
func (s *DiagnosticService) GetMetricsHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "success",
		"diagnostics": s.Collect(c.UserContext()),
	})
}

// HealthHandler reports ok while the dispatcher answers
func (s *DiagnosticService) HealthHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), statusTimeout)
	defer cancel()

	if _, err := s.status.Status(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
