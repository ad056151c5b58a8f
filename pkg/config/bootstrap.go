package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BootstrapFileName is the configuration file looked up inside the config directory.
const BootstrapFileName = "bridge_config.yaml"

// Environment overrides
const (
	EnvRPCAddress = "TELEOP_BRIDGE_RPC_ADDRESS"
	EnvTopic      = "TELEOP_BRIDGE_TOPIC"
	EnvTickMs     = "TELEOP_BRIDGE_TICK_MS"
	EnvLogLevel   = "TELEOP_BRIDGE_LOG_LEVEL"
	EnvMiddleware = "TELEOP_BRIDGE_MIDDLEWARE"
	EnvRosDistro  = "ROS_DISTRO"
)

// LoadBootstrapConfig loads the bootstrap configuration from bridge_config.yaml.
// A missing file is not an error: defaults are used instead.
func LoadBootstrapConfig(configDir string) (*BootstrapConfig, error) {
	bootstrapCfg := DefaultBootstrapConfig()
	bootstrapConfigPath := filepath.Join(configDir, BootstrapFileName)

	data, err := os.ReadFile(bootstrapConfigPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("error reading bootstrap config file '%s': %w", bootstrapConfigPath, err)
	default:
		if err := yaml.Unmarshal(data, bootstrapCfg); err != nil {
			return nil, fmt.Errorf("error parsing bootstrap config file '%s': %w", bootstrapConfigPath, err)
		}
	}

	if err := applyEnvOverrides(bootstrapCfg); err != nil {
		return nil, err
	}

	if err := bootstrapCfg.Validate(); err != nil {
		return nil, err
	}

	return bootstrapCfg, nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *BootstrapConfig) error {
	if addr := os.Getenv(EnvRPCAddress); addr != "" {
		cfg.RPC.BindAddress = addr
	}
	if topic := os.Getenv(EnvTopic); topic != "" {
		cfg.Middleware.Topic = topic
	}
	if tick := os.Getenv(EnvTickMs); tick != "" {
		ms, err := strconv.Atoi(tick)
		if err != nil {
			return fmt.Errorf("invalid %s value '%s': %w", EnvTickMs, tick, err)
		}
		cfg.Middleware.TickDurationMs = ms
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if backend := os.Getenv(EnvMiddleware); backend != "" {
		cfg.Middleware.Backend = backend
	}
	if distro := os.Getenv(EnvRosDistro); distro != "" {
		cfg.Middleware.RosDistro = distro
	}
	return nil
}

// Validate checks required fields and value ranges.
func (c *BootstrapConfig) Validate() error {
	if c.RPC.BindAddress == "" {
		return fmt.Errorf("missing required field in bootstrap config: rpc.bind_address")
	}
	if c.Middleware.Topic == "" {
		return fmt.Errorf("missing required field in bootstrap config: middleware.topic")
	}
	if !strings.HasPrefix(c.Middleware.Topic, "/") {
		return fmt.Errorf("invalid middleware.topic '%s': must be an absolute ROS topic name", c.Middleware.Topic)
	}
	if c.Middleware.NodeName == "" {
		return fmt.Errorf("missing required field in bootstrap config: middleware.node_name")
	}
	if c.Middleware.TickDurationMs <= 0 {
		return fmt.Errorf("invalid middleware.tick_duration_ms %d: must be positive", c.Middleware.TickDurationMs)
	}
	if c.Middleware.QoS.Depth < 0 {
		return fmt.Errorf("invalid middleware.qos.depth %d: must not be negative", c.Middleware.QoS.Depth)
	}
	if c.HTTP.Enabled && (c.HTTP.Port <= 0 || c.HTTP.Port > 65535) {
		return fmt.Errorf("invalid http.port %d", c.HTTP.Port)
	}

	switch c.Middleware.Backend {
	case BackendLoopback:
	case BackendZeroMQ:
		if c.Middleware.ZeroMQ.PublishBindAddress == "" {
			return fmt.Errorf("missing required field in bootstrap config: middleware.zeromq.publish_bind_address")
		}
		if c.Middleware.ZeroMQ.GatewaySubscribeAddress == "" {
			return fmt.Errorf("missing required field in bootstrap config: middleware.zeromq.gateway_subscribe_address")
		}
		if c.Middleware.ZeroMQ.AdvertiseIntervalMs <= 0 {
			return fmt.Errorf("invalid middleware.zeromq.advertise_interval_ms %d: must be positive", c.Middleware.ZeroMQ.AdvertiseIntervalMs)
		}
		if c.Middleware.ZeroMQ.GatewayTimeoutMs <= 0 {
			return fmt.Errorf("invalid middleware.zeromq.gateway_timeout_ms %d: must be positive", c.Middleware.ZeroMQ.GatewayTimeoutMs)
		}
	default:
		return fmt.Errorf("invalid middleware.backend '%s': must be one of %s, %s", c.Middleware.Backend, BackendZeroMQ, BackendLoopback)
	}

	return nil
}
