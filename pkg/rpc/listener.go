package rpc

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"google.golang.org/grpc"

	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/teleoppb"
)

// Listener runs the gRPC server on a network address.
type Listener struct {
	address  string
	server   *grpc.Server
	listener net.Listener
	logger   customlog.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewListener creates a gRPC server for srv that will listen on address.
func NewListener(address string, srv teleoppb.TeleopServer, logger customlog.Logger) *Listener {
	server := grpc.NewServer(
		grpc.UnaryInterceptor(UnaryLoggingInterceptor(logger)),
	)
	teleoppb.RegisterTeleopServer(server, srv)

	return &Listener{
		address: address,
		server:  server,
		logger:  logger,
	}
}

// Start binds the address and serves in the background.
func (l *Listener) Start() error {
	lis, err := net.Listen("tcp", l.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.address, err)
	}
	return l.Serve(lis)
}

// Serve serves on an existing listener in the background.
func (l *Listener) Serve(lis net.Listener) error {
	if !l.running.CompareAndSwap(false, true) {
		lis.Close()
		return fmt.Errorf("gRPC server already running")
	}
	l.listener = lis

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.logger.Infof("gRPC server listening on %s", lis.Addr())
		if err := l.server.Serve(lis); err != nil && l.running.Load() {
			l.logger.Errorf("gRPC server error: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start.
func (l *Listener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Stop gracefully stops the gRPC server, waiting for in-flight calls.
func (l *Listener) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}

	l.server.GracefulStop()
	l.wg.Wait()
	l.logger.Infof("gRPC server stopped")
}
