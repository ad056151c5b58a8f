package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/teleop-bridge/domain/diagnostic"
	"github.com/open-teleop/teleop-bridge/domain/teleop"
	"github.com/open-teleop/teleop-bridge/pkg/config"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
	"github.com/open-teleop/teleop-bridge/pkg/msgs/geometry_msgs"
	"github.com/open-teleop/teleop-bridge/pkg/topics"
	"github.com/open-teleop/teleop-bridge/services"
)

type testBridge struct {
	app  *fiber.App
	node *middleware.LoopbackNode
}

func newTestBridge(t *testing.T) *testBridge {
	t.Helper()

	logger := customlog.NewDiscardLogger()
	node := middleware.NewLoopbackNode("teleop_node")
	registry := topics.NewTopicRegistry(logger)
	d := teleop.NewDispatcher(node, teleop.Options{TickDuration: 5 * time.Millisecond}, registry, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	cfgService, err := services.NewBridgeConfigService(config.DefaultBootstrapConfig(), "bridge_config.yaml", logger)
	require.NoError(t, err)

	app := NewApp(Services{
		Commands:    d,
		Diagnostics: diagnostic.NewDiagnosticService(d, registry, logger),
		Config:      cfgService,
	}, logger)

	return &testBridge{app: app, node: node}
}

func TestRootAndHealth(t *testing.T) {
	b := newTestBridge(t)

	resp, err := b.app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = b.app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestConfigRouteServesYAML(t *testing.T) {
	b := newTestBridge(t)

	resp, err := b.app.Test(httptest.NewRequest("GET", "/api/v1/config/bridge", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-yaml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "topic: /cmd_vel")

	// read-only
	resp, err = b.app.Test(httptest.NewRequest("PUT", "/api/v1/config/bridge", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	b := newTestBridge(t)

	resp, err := b.app.Test(httptest.NewRequest("GET", "/api/ws/control", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestControlWebSocket(t *testing.T) {
	b := newTestBridge(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = b.app.Listener(ln) }()
	t.Cleanup(func() { _ = b.app.Shutdown() })

	conn, _, err := gorilla.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/ws/control", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"seq":7,"angular":{"z":0.75}}`)))
	var reply CommandReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, CommandReply{Seq: 7, Success: true}, reply)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.Success)
	assert.Contains(t, reply.Error, "invalid command")

	published := b.node.Published()
	require.Len(t, published, 1)
	assert.Equal(t, geometry_msgs.Twist{Angular: geometry_msgs.Vector3{Z: 0.75}}, published[0].Message)

	// the published command shows up in diagnostics
	resp, err := b.app.Test(httptest.NewRequest("GET", "/api/diagnostics", nil), -1)
	require.NoError(t, err)
	var body struct {
		Diagnostics diagnostic.BridgeDiagnostics `json:"diagnostics"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Diagnostics.Dispatcher)
	assert.Equal(t, uint64(1), body.Diagnostics.Dispatcher.Published)
	assert.Equal(t, map[string]interface{}{"x": 0.0, "y": 0.0, "z": 0.75}, body.Diagnostics.LastMessages["/cmd_vel"]["angular"])
}

func TestTwistMsgCommand(t *testing.T) {
	var msg TwistMsg
	require.NoError(t, json.Unmarshal([]byte(`{"linear":{"x":1}}`), &msg))

	cmd := msg.Command()
	require.NotNil(t, cmd.Linear)
	assert.Nil(t, cmd.Angular)
	assert.Equal(t, 1.0, cmd.Linear.X)
}
