package api

import (
	"context"
	"encoding/json"
	"errors"
	"syscall"

	"github.com/gofiber/contrib/websocket"

	"github.com/open-teleop/teleop-bridge/domain/teleop"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

// ControlWebSocketHandler reads Twist commands from a WebSocket, hands each
// one to the dispatcher and replies with a CommandReply.
func ControlWebSocketHandler(conn *websocket.Conn, logger customlog.Logger, handler teleop.CommandHandler) {
	logger = logger.WithField("remote", conn.RemoteAddr().String())
	logger.Infof("Control WebSocket connected")

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Errorf("Control WS read error: %v", err)
			} else if err != websocket.ErrCloseSent && !errors.Is(err, syscall.EPIPE) && !errors.Is(err, syscall.ECONNRESET) {
				logger.Infof("Control WS connection closed: %v", err)
			} else {
				logger.Infof("Control WS connection closed normally.")
			}
			break
		}

		if mt != websocket.TextMessage {
			logger.Infof("Ignoring non-text Control WS message type: %d", mt)
			continue
		}

		var twist TwistMsg
		if err := json.Unmarshal(msg, &twist); err != nil {
			logger.Warnf("Failed to unmarshal Twist command from WS: %v. Message: %s", err, string(msg))
			if writeErr := conn.WriteJSON(CommandReply{Success: false, Error: "invalid command: " + err.Error()}); writeErr != nil {
				break
			}
			continue
		}

		reply := CommandReply{Seq: twist.Seq}
		ack, handleErr := handler.Handle(context.Background(), twist.Command())
		reply.Success = ack.Success
		if handleErr != nil {
			logger.Warnf("Control WS command %d failed: %v", twist.Seq, handleErr)
			reply.Error = handleErr.Error()
		}

		if err := conn.WriteJSON(reply); err != nil {
			logger.Warnf("Failed to write Control WS reply: %v", err)
			break
		}
		if errors.Is(handleErr, teleop.ErrDispatcherStopped) {
			break
		}
	}
	logger.Infof("Control WebSocket disconnected")
}
