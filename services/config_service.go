package services

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/open-teleop/teleop-bridge/pkg/config"
	customlog "github.com/open-teleop/teleop-bridge/pkg/log"
)

// BridgeConfigService exposes the effective bridge configuration.
// The configuration is fixed for the life of the process.
type BridgeConfigService interface {
	GetCurrentConfig() *config.BootstrapConfig
	GetCurrentConfigYAML() ([]byte, error)
	ConfigPath() string
}

// bridgeConfigService implements the BridgeConfigService interface.
type bridgeConfigService struct {
	configPath string
	current    *config.BootstrapConfig
	logger     customlog.Logger

	yamlOnce sync.Once
	yamlData []byte
	yamlErr  error
}

// NewBridgeConfigService wraps the configuration loaded from configPath.
func NewBridgeConfigService(cfg *config.BootstrapConfig, configPath string, logger customlog.Logger) (BridgeConfigService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bridge configuration cannot be nil")
	}

	logger.Debugf("BridgeConfigService initialized for %s", configPath)
	return &bridgeConfigService{
		configPath: configPath,
		current:    cfg,
		logger:     logger,
	}, nil
}

// GetCurrentConfig returns a copy of the effective configuration.
func (s *bridgeConfigService) GetCurrentConfig() *config.BootstrapConfig {
	cfgCopy := *s.current
	return &cfgCopy
}

// GetCurrentConfigYAML returns the effective configuration serialized as YAML.
func (s *bridgeConfigService) GetCurrentConfigYAML() ([]byte, error) {
	s.yamlOnce.Do(func() {
		s.yamlData, s.yamlErr = yaml.Marshal(s.current)
		if s.yamlErr != nil {
			s.logger.Errorf("Failed to marshal bridge config to YAML: %v", s.yamlErr)
			s.yamlErr = fmt.Errorf("failed to marshal config: %w", s.yamlErr)
		}
	})
	return s.yamlData, s.yamlErr
}

// ConfigPath returns the file the configuration was read from.
func (s *bridgeConfigService) ConfigPath() string {
	return s.configPath
}
