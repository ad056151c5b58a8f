package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/open-teleop/teleop-bridge/domain/diagnostic"
	"github.com/open-teleop/teleop-bridge/domain/teleop"
	"github.com/open-teleop/teleop-bridge/pkg/api"
	"github.com/open-teleop/teleop-bridge/pkg/config"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
	"github.com/open-teleop/teleop-bridge/pkg/middleware"
	"github.com/open-teleop/teleop-bridge/pkg/rpc"
	"github.com/open-teleop/teleop-bridge/pkg/topics"
	"github.com/open-teleop/teleop-bridge/pkg/zeromq"
	"github.com/open-teleop/teleop-bridge/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configDir := flag.String("config-dir", "./config", "Directory containing bridge_config.yaml")
	flag.Parse()

	cfg, err := config.LoadBootstrapConfig(*configDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to load bootstrap configuration: %v", err)
	}

	logger, err := customlog.NewLogrusLogger(cfg.Logging.Level, cfg.Logging.LogPath, customlog.FileOptions{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}

	if err := run(cfg, filepath.Join(*configDir, config.BootstrapFileName), logger); err != nil {
		logger.Fatalf("Bridge stopped with error: %v", err)
	}
	logger.Infof("Bridge exited properly")
}

func run(cfg *config.BootstrapConfig, configPath string, logger customlog.Logger) error {
	qos, err := middleware.ParseQosProfile(
		cfg.Middleware.QoS.Reliability,
		cfg.Middleware.QoS.Durability,
		cfg.Middleware.QoS.History,
		cfg.Middleware.QoS.Depth,
	)
	if err != nil {
		return err
	}

	node, err := newNode(&cfg.Middleware, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			logger.Warnf("Error closing middleware node: %v", err)
		}
	}()

	registry := topics.NewTopicRegistry(logger)
	dispatcher := teleop.NewDispatcher(node, teleop.Options{
		Topic:        cfg.Middleware.Topic,
		QoS:          qos,
		TickDuration: cfg.Middleware.TickDuration(),
	}, registry, logger)

	grpcListener := rpc.NewListener(cfg.RPC.BindAddress, rpc.NewServer(dispatcher, logger), logger)
	if err := grpcListener.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Infof("Shutting down gRPC server...")
		grpcListener.Stop()
		return nil
	})

	if cfg.HTTP.Enabled {
		configService, err := services.NewBridgeConfigService(cfg, configPath, logger)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}

		app := api.NewApp(api.Services{
			Commands:    dispatcher,
			Diagnostics: diagnostic.NewDiagnosticService(dispatcher, registry, logger),
			Config:      configService,
			AccessLog:   os.Stdout,
		}, logger)

		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		g.Go(func() error {
			logger.Infof("HTTP server starting on %s", addr)
			return app.Listen(addr)
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Infof("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		})
	}

	logger.Infof("Teleop bridge ready: gRPC %s, topic %s, qos %s", grpcListener.Addr(), dispatcher.Topic(), qos)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newNode(cfg *config.MiddlewareConfig, logger customlog.Logger) (middleware.Node, error) {
	switch cfg.Backend {
	case config.BackendLoopback:
		logger.Warnf("Using loopback middleware: commands are recorded, not delivered")
		return middleware.NewLoopbackNode(cfg.NodeName), nil
	default:
		node, err := zeromq.NewNode(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create ZeroMQ node: %w", err)
		}
		return node, nil
	}
}
