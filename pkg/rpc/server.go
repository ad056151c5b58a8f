// Package rpc serves the Teleop gRPC service.
package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/open-teleop/teleop-bridge/domain/teleop"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/teleoppb"
)

// Ensure Server implements the gRPC interface.
var _ teleoppb.TeleopServer = (*Server)(nil)

// Server implements the Teleop gRPC service on top of a command handler.
type Server struct {
	teleoppb.UnimplementedTeleopServer

	handler teleop.CommandHandler
	logger  customlog.Logger
}

// NewServer creates a new gRPC service implementation.
func NewServer(handler teleop.CommandHandler, logger customlog.Logger) *Server {
	return &Server{
		handler: handler,
		logger:  logger,
	}
}

// SendCommand publishes one velocity command. A failed publish is reported
// as success=false with an OK status.
func (s *Server) SendCommand(ctx context.Context, req *teleoppb.CommandRequest) (*teleoppb.CommandAck, error) {
	ack, err := s.handler.Handle(ctx, teleop.CommandFromProto(req))
	if err == nil {
		return &teleoppb.CommandAck{Success: ack.Success}, nil
	}

	var dispatchErr *teleop.DispatchError
	switch {
	case errors.As(err, &dispatchErr):
		s.logger.Warnf("SendCommand not published: %v", err)
		return &teleoppb.CommandAck{Success: false}, nil
	case errors.Is(err, teleop.ErrDispatcherStopped):
		return nil, status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, status.FromContextError(err).Err()
	default:
		return nil, status.Errorf(codes.Internal, "send command: %v", err)
	}
}
