package services

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/open-teleop/teleop-bridge/pkg/config"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

func TestBridgeConfigServiceYAML(t *testing.T) {
	cfg := config.DefaultBootstrapConfig()
	cfg.Middleware.Topic = "/robot/cmd_vel"

	svc, err := NewBridgeConfigService(cfg, "/etc/teleop/bridge_config.yaml", customlog.NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewBridgeConfigService failed: %v", err)
	}

	data, err := svc.GetCurrentConfigYAML()
	if err != nil {
		t.Fatalf("GetCurrentConfigYAML failed: %v", err)
	}

	var decoded config.BootstrapConfig
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("YAML output does not parse: %v", err)
	}
	if decoded.Middleware.Topic != "/robot/cmd_vel" {
		t.Errorf("Expected topic '/robot/cmd_vel', got '%s'", decoded.Middleware.Topic)
	}
	if decoded.RPC.BindAddress != cfg.RPC.BindAddress {
		t.Errorf("Expected bind address '%s', got '%s'", cfg.RPC.BindAddress, decoded.RPC.BindAddress)
	}
	if svc.ConfigPath() != "/etc/teleop/bridge_config.yaml" {
		t.Errorf("Unexpected config path '%s'", svc.ConfigPath())
	}
}

func TestBridgeConfigServiceReturnsCopy(t *testing.T) {
	cfg := config.DefaultBootstrapConfig()
	svc, err := NewBridgeConfigService(cfg, "", customlog.NewDiscardLogger())
	if err != nil {
		t.Fatalf("NewBridgeConfigService failed: %v", err)
	}

	got := svc.GetCurrentConfig()
	got.RPC.BindAddress = "0.0.0.0:1"
	if cfg.RPC.BindAddress == "0.0.0.0:1" {
		t.Errorf("GetCurrentConfig leaked a mutable reference")
	}
}

func TestBridgeConfigServiceRejectsNil(t *testing.T) {
	if _, err := NewBridgeConfigService(nil, "", customlog.NewDiscardLogger()); err == nil {
		t.Errorf("Expected error for nil config")
	}
}
