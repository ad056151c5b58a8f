package config

import (
	"time"
)

// Middleware backends
const (
	BackendZeroMQ   = "zeromq"
	BackendLoopback = "loopback"
)

// BootstrapConfig holds the configuration loaded from bridge_config.yaml
type BootstrapConfig struct {
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	RPC        RPCConfig        `yaml:"rpc" json:"rpc"`
	HTTP       HTTPConfig       `yaml:"http" json:"http"`
	Middleware MiddlewareConfig `yaml:"middleware" json:"middleware"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	LogPath    string `yaml:"log_path,omitempty" json:"log_path,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// RPCConfig holds the gRPC listener settings
type RPCConfig struct {
	BindAddress string `yaml:"bind_address" json:"bind_address"`
}

// HTTPConfig holds the admin HTTP server settings
type HTTPConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Port    int  `yaml:"port" json:"port"`
}

// MiddlewareConfig describes the node the bridge publishes through
type MiddlewareConfig struct {
	Backend        string       `yaml:"backend" json:"backend"`
	NodeName       string       `yaml:"node_name" json:"node_name"`
	Namespace      string       `yaml:"namespace" json:"namespace"`
	RosDistro      string       `yaml:"ros_distro" json:"ros_distro"`
	Topic          string       `yaml:"topic" json:"topic"`
	TickDurationMs int          `yaml:"tick_duration_ms" json:"tick_duration_ms"`
	QoS            QoSConfig    `yaml:"qos" json:"qos"`
	ZeroMQ         ZeroMQConfig `yaml:"zeromq" json:"zeromq"`
}

// QoSConfig mirrors the ROS2 publisher quality-of-service settings
type QoSConfig struct {
	Reliability string `yaml:"reliability" json:"reliability"`
	Durability  string `yaml:"durability" json:"durability"`
	History     string `yaml:"history" json:"history"`
	Depth       int    `yaml:"depth" json:"depth"`
}

// ZeroMQConfig holds the gateway link settings
type ZeroMQConfig struct {
	PublishBindAddress      string `yaml:"publish_bind_address" json:"publish_bind_address"`
	GatewaySubscribeAddress string `yaml:"gateway_subscribe_address" json:"gateway_subscribe_address"`
	AdvertiseIntervalMs     int    `yaml:"advertise_interval_ms" json:"advertise_interval_ms"`
	GatewayTimeoutMs        int    `yaml:"gateway_timeout_ms" json:"gateway_timeout_ms"`
}

// DefaultBootstrapConfig returns the configuration used when no file overrides it.
func DefaultBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		RPC: RPCConfig{
			BindAddress: "127.0.0.1:50051",
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Port:    8080,
		},
		Middleware: MiddlewareConfig{
			Backend:        BackendZeroMQ,
			NodeName:       "teleop_node",
			RosDistro:      "humble",
			Topic:          "/cmd_vel",
			TickDurationMs: 100,
			QoS: QoSConfig{
				Reliability: "reliable",
				Durability:  "volatile",
				History:     "keep_last",
				Depth:       10,
			},
			ZeroMQ: ZeroMQConfig{
				PublishBindAddress:      "tcp://*:5570",
				GatewaySubscribeAddress: "tcp://localhost:5571",
				AdvertiseIntervalMs:     1000,
				GatewayTimeoutMs:        3000,
			},
		},
	}
}

// TickDuration returns the event-loop service interval.
func (c *MiddlewareConfig) TickDuration() time.Duration {
	return time.Duration(c.TickDurationMs) * time.Millisecond
}

// AdvertiseInterval returns how often publishers are re-announced to gateways.
func (c *ZeroMQConfig) AdvertiseInterval() time.Duration {
	return time.Duration(c.AdvertiseIntervalMs) * time.Millisecond
}

// GatewayTimeout returns how long a silent gateway is still considered alive.
func (c *ZeroMQConfig) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutMs) * time.Millisecond
}
