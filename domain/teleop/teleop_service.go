package teleop

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

// CommandHandler accepts velocity commands. *Dispatcher implements it.
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (Ack, error)
}

// TeleopService exposes the dispatcher over HTTP
type TeleopService struct {
	handler CommandHandler
	logger  customlog.Logger
}

// NewTeleopService creates a new teleop service instance
func NewTeleopService(handler CommandHandler, logger customlog.Logger) *TeleopService {
	return &TeleopService{
		handler: handler,
		logger:  logger,
	}
}

// CommandHandler processes a JSON Twist command posted by a client
func (s *TeleopService) CommandHandler(c *fiber.Ctx) error {
	var cmd Command
	if err := c.BodyParser(&cmd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	ack, err := s.handler.Handle(c.UserContext(), cmd)
	if err != nil {
		status := StatusForError(err)
		s.logger.Warnf("HTTP command failed (%d): %v", status, err)
		return c.Status(status).JSON(fiber.Map{
			"success": ack.Success,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": ack.Success,
		"command": Translate(cmd),
	})
}

// StatusForError maps a Handle error to an HTTP status code.
func StatusForError(err error) int {
	var dispatchErr *DispatchError
	switch {
	case errors.As(err, &dispatchErr):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrDispatcherStopped):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
