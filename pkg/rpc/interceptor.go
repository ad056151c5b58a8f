package rpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

// UnaryLoggingInterceptor logs every unary call with its status code and duration.
func UnaryLoggingInterceptor(logger customlog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := map[string]interface{}{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start).Round(time.Microsecond),
		}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields["peer"] = p.Addr.String()
		}

		entry := logger.WithFields(fields)
		if err != nil {
			entry.Warnf("RPC failed: %v", err)
		} else {
			entry.Debugf("RPC handled")
		}
		return resp, err
	}
}
