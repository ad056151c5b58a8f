package teleop

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
)

func newTestApp(handler CommandHandler) *fiber.App {
	app := fiber.New()
	svc := NewTeleopService(handler, customlog.NewDiscardLogger())
	app.Post("/api/teleop/command", svc.CommandHandler)
	return app
}

func postCommand(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/teleop/command", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestCommandHandlerPublishes(t *testing.T) {
	node := middleware.NewLoopbackNode("teleop_node")
	app := newTestApp(startDispatcher(t, node, nil))

	status, body := postCommand(t, app, `{"linear":{"x":0.5}}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	published := node.Published()
	require.Len(t, published, 1)
	assert.Equal(t, geometry_msgs.Twist{Linear: geometry_msgs.Vector3{X: 0.5}}, published[0].Message)
}

func TestCommandHandlerRejectsMalformedJSON(t *testing.T) {
	node := middleware.NewLoopbackNode("teleop_node")
	app := newTestApp(startDispatcher(t, node, nil))

	status, body := postCommand(t, app, `{"linear":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, node.Published())
}

type stubHandler struct {
	ack Ack
	err error
}

func (h stubHandler) Handle(context.Context, Command) (Ack, error) {
	return h.ack, h.err
}

func TestCommandHandlerErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"publish failure", &DispatchError{Op: OpPublish, Topic: "/cmd_vel", Err: errors.New("down")}, fiber.StatusBadGateway},
		{"stopped", ErrDispatcherStopped, fiber.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, fiber.StatusGatewayTimeout},
		{"other", errors.New("???"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(stubHandler{err: tt.err})
			status, body := postCommand(t, app, `{}`)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
