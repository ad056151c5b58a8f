package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv makes the tests independent of the calling shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvRPCAddress, EnvTopic, EnvTickMs, EnvLogLevel, EnvMiddleware, EnvRosDistro} {
		t.Setenv(key, "")
	}
}

func writeBootstrap(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BootstrapFileName), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test bootstrap config: %v", err)
	}
	return dir
}

func TestLoadBootstrapConfig(t *testing.T) {
	clearEnv(t)

	bootstrapContent := `
logging:
  level: "debug"
  log_path: "/var/log/teleop-bridge"
rpc:
  bind_address: "0.0.0.0:6000"
http:
  enabled: true
  port: 9090
middleware:
  backend: "zeromq"
  node_name: "bridge_node"
  namespace: "robot1"
  topic: "/robot1/cmd_vel"
  tick_duration_ms: 50
  qos:
    reliability: "best_effort"
    durability: "volatile"
    history: "keep_last"
    depth: 1
  zeromq:
    publish_bind_address: "tcp://*:6666"
    gateway_subscribe_address: "tcp://gateway:7777"
    advertise_interval_ms: 500
    gateway_timeout_ms: 1500
`
	dir := writeBootstrap(t, bootstrapContent)

	bootstrapCfg, err := LoadBootstrapConfig(dir)
	if err != nil {
		t.Fatalf("LoadBootstrapConfig failed: %v", err)
	}

	if bootstrapCfg.Logging.Level != "debug" {
		t.Errorf("Expected logging level 'debug', got '%s'", bootstrapCfg.Logging.Level)
	}
	if bootstrapCfg.Logging.LogPath != "/var/log/teleop-bridge" {
		t.Errorf("Expected log path '/var/log/teleop-bridge', got '%s'", bootstrapCfg.Logging.LogPath)
	}
	if bootstrapCfg.RPC.BindAddress != "0.0.0.0:6000" {
		t.Errorf("Expected rpc bind_address '0.0.0.0:6000', got '%s'", bootstrapCfg.RPC.BindAddress)
	}
	if bootstrapCfg.HTTP.Port != 9090 {
		t.Errorf("Expected http port 9090, got %d", bootstrapCfg.HTTP.Port)
	}
	if bootstrapCfg.Middleware.NodeName != "bridge_node" {
		t.Errorf("Expected node_name 'bridge_node', got '%s'", bootstrapCfg.Middleware.NodeName)
	}
	if bootstrapCfg.Middleware.Namespace != "robot1" {
		t.Errorf("Expected namespace 'robot1', got '%s'", bootstrapCfg.Middleware.Namespace)
	}
	if bootstrapCfg.Middleware.Topic != "/robot1/cmd_vel" {
		t.Errorf("Expected topic '/robot1/cmd_vel', got '%s'", bootstrapCfg.Middleware.Topic)
	}
	if bootstrapCfg.Middleware.TickDuration() != 50*time.Millisecond {
		t.Errorf("Expected tick 50ms, got %v", bootstrapCfg.Middleware.TickDuration())
	}
	if bootstrapCfg.Middleware.QoS.Reliability != "best_effort" {
		t.Errorf("Expected qos reliability 'best_effort', got '%s'", bootstrapCfg.Middleware.QoS.Reliability)
	}
	if bootstrapCfg.Middleware.QoS.Depth != 1 {
		t.Errorf("Expected qos depth 1, got %d", bootstrapCfg.Middleware.QoS.Depth)
	}
	if bootstrapCfg.Middleware.ZeroMQ.PublishBindAddress != "tcp://*:6666" {
		t.Errorf("Expected publish_bind_address 'tcp://*:6666', got '%s'", bootstrapCfg.Middleware.ZeroMQ.PublishBindAddress)
	}
	if bootstrapCfg.Middleware.ZeroMQ.GatewaySubscribeAddress != "tcp://gateway:7777" {
		t.Errorf("Expected gateway_subscribe_address 'tcp://gateway:7777', got '%s'", bootstrapCfg.Middleware.ZeroMQ.GatewaySubscribeAddress)
	}
	if bootstrapCfg.Middleware.ZeroMQ.AdvertiseInterval() != 500*time.Millisecond {
		t.Errorf("Expected advertise interval 500ms, got %v", bootstrapCfg.Middleware.ZeroMQ.AdvertiseInterval())
	}
	if bootstrapCfg.Middleware.ZeroMQ.GatewayTimeout() != 1500*time.Millisecond {
		t.Errorf("Expected gateway timeout 1500ms, got %v", bootstrapCfg.Middleware.ZeroMQ.GatewayTimeout())
	}

	// Fields not present in the file keep their defaults
	if bootstrapCfg.Middleware.RosDistro != "humble" {
		t.Errorf("Expected default ros_distro 'humble', got '%s'", bootstrapCfg.Middleware.RosDistro)
	}
	if bootstrapCfg.Logging.MaxBackups != 3 {
		t.Errorf("Expected default max_backups 3, got %d", bootstrapCfg.Logging.MaxBackups)
	}
}

func TestLoadBootstrapConfigDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)

	bootstrapCfg, err := LoadBootstrapConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadBootstrapConfig failed: %v", err)
	}

	if bootstrapCfg.RPC.BindAddress != "127.0.0.1:50051" {
		t.Errorf("Expected default bind address, got '%s'", bootstrapCfg.RPC.BindAddress)
	}
	if bootstrapCfg.Middleware.Topic != "/cmd_vel" {
		t.Errorf("Expected default topic '/cmd_vel', got '%s'", bootstrapCfg.Middleware.Topic)
	}
	if bootstrapCfg.Middleware.TickDuration() != 100*time.Millisecond {
		t.Errorf("Expected default tick 100ms, got %v", bootstrapCfg.Middleware.TickDuration())
	}
	if bootstrapCfg.Middleware.NodeName != "teleop_node" {
		t.Errorf("Expected default node name 'teleop_node', got '%s'", bootstrapCfg.Middleware.NodeName)
	}
}

func TestLoadBootstrapConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRPCAddress, "127.0.0.1:7000")
	t.Setenv(EnvTopic, "/turtle1/cmd_vel")
	t.Setenv(EnvTickMs, "20")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMiddleware, BackendLoopback)
	t.Setenv(EnvRosDistro, "jazzy")

	bootstrapCfg, err := LoadBootstrapConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadBootstrapConfig failed: %v", err)
	}

	if bootstrapCfg.RPC.BindAddress != "127.0.0.1:7000" {
		t.Errorf("Expected overridden bind address, got '%s'", bootstrapCfg.RPC.BindAddress)
	}
	if bootstrapCfg.Middleware.Topic != "/turtle1/cmd_vel" {
		t.Errorf("Expected overridden topic, got '%s'", bootstrapCfg.Middleware.Topic)
	}
	if bootstrapCfg.Middleware.TickDurationMs != 20 {
		t.Errorf("Expected overridden tick 20, got %d", bootstrapCfg.Middleware.TickDurationMs)
	}
	if bootstrapCfg.Logging.Level != "warn" {
		t.Errorf("Expected overridden log level, got '%s'", bootstrapCfg.Logging.Level)
	}
	if bootstrapCfg.Middleware.Backend != BackendLoopback {
		t.Errorf("Expected overridden backend, got '%s'", bootstrapCfg.Middleware.Backend)
	}
	if bootstrapCfg.Middleware.RosDistro != "jazzy" {
		t.Errorf("Expected overridden ros distro, got '%s'", bootstrapCfg.Middleware.RosDistro)
	}
}

func TestLoadBootstrapConfigInvalidTickEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTickMs, "fast")

	if _, err := LoadBootstrapConfig(t.TempDir()); err == nil {
		t.Errorf("Expected error for non-numeric %s", EnvTickMs)
	}
}

// Test case for missing required fields validation in LoadBootstrapConfig
func TestLoadBootstrapConfigMissingRequired(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name: "empty bind address",
			content: `
rpc:
  bind_address: ""
`,
			expected: "missing required field in bootstrap config: rpc.bind_address",
		},
		{
			name: "empty topic",
			content: `
middleware:
  topic: ""
`,
			expected: "missing required field in bootstrap config: middleware.topic",
		},
		{
			name: "empty zeromq publish address",
			content: `
middleware:
  backend: "zeromq"
  zeromq:
    publish_bind_address: ""
`,
			expected: "missing required field in bootstrap config: middleware.zeromq.publish_bind_address",
		},
		{
			name: "relative topic",
			content: `
middleware:
  topic: "cmd_vel"
`,
			expected: "must be an absolute ROS topic name",
		},
		{
			name: "non-positive tick",
			content: `
middleware:
  tick_duration_ms: 0
`,
			expected: "invalid middleware.tick_duration_ms 0",
		},
		{
			name: "zero gateway timeout",
			content: `
middleware:
  backend: "zeromq"
  zeromq:
    gateway_timeout_ms: 0
`,
			expected: "invalid middleware.zeromq.gateway_timeout_ms 0",
		},
		{
			name: "negative advertise interval",
			content: `
middleware:
  backend: "zeromq"
  zeromq:
    advertise_interval_ms: -5
`,
			expected: "invalid middleware.zeromq.advertise_interval_ms -5",
		},
		{
			name: "unknown backend",
			content: `
middleware:
  backend: "dds"
`,
			expected: "invalid middleware.backend 'dds'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeBootstrap(t, tt.content)

			_, err := LoadBootstrapConfig(dir)
			if err == nil {
				t.Fatalf("Expected error when loading bootstrap config, but got nil")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error message to contain '%s', but got: %v", tt.expected, err)
			}
		})
	}
}

func TestLoadBootstrapConfigMalformedYAML(t *testing.T) {
	clearEnv(t)
	dir := writeBootstrap(t, "rpc: [unterminated")

	_, err := LoadBootstrapConfig(dir)
	if err == nil || !strings.Contains(err.Error(), "error parsing bootstrap config file") {
		t.Errorf("Expected parse error, got %v", err)
	}
}
