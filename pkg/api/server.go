package api

import (
	"io"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/open-teleop/teleop-bridge/domain/diagnostic"
	"github.com/open-teleop/teleop-bridge/domain/teleop"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/services"
)

// AppName is reported by the root endpoint.
const AppName = "Open-Teleop Bridge"

// Services are the handlers behind the HTTP routes.
type Services struct {
	Commands    teleop.CommandHandler
	Diagnostics *diagnostic.DiagnosticService
	Config      services.BridgeConfigService
	// AccessLog receives one line per request when set.
	AccessLog io.Writer
}

// NewApp builds the Fiber app serving health, diagnostics, configuration
// and the JSON and WebSocket command ingress.
func NewApp(svc Services, logger customlog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	if svc.AccessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{Output: svc.AccessLog}))
	}
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"service": "open-teleop bridge",
		})
	})

	if svc.Diagnostics != nil {
		app.Get("/health", svc.Diagnostics.HealthHandler)
		app.Get("/api/diagnostics", svc.Diagnostics.GetMetricsHandler)
	}

	teleopService := teleop.NewTeleopService(svc.Commands, logger)
	app.Post("/api/teleop/command", teleopService.CommandHandler)

	// WebSocket upgrade check
	app.Use("/api/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/api/ws/control", websocket.New(func(conn *websocket.Conn) {
		ControlWebSocketHandler(conn, logger, svc.Commands)
	}))

	if svc.Config != nil {
		RegisterConfigRoutes(app, svc.Config, logger)
	}

	return app
}

// customErrorHandler renders errors as JSON
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
