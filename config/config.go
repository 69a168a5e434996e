package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all library configuration.
type Config struct {
	Gateway GatewayConfig
	Manager ManagerConfig
	Store   StoreConfig
	Logging LogConfig
}

// GatewayConfig holds gateway device table configuration.
type GatewayConfig struct {
	// MaxDevices bounds the number of concurrently registered devices.
	MaxDevices int `envconfig:"LWM2M_GW_MAX_DEVICES" default:"16"`

	// InstanceOffset is the first base-instance number handed out.
	// Instance IDs below it are reserved for statically managed objects.
	InstanceOffset uint16 `envconfig:"LWM2M_GW_INSTANCE_OFFSET" default:"100"`

	// InstanceStride is the distance between the base instances of
	// adjacent table indices. It bounds how many dependent offsets one
	// device can use without colliding with its neighbor.
	InstanceStride uint16 `envconfig:"LWM2M_GW_INSTANCE_STRIDE" default:"10"`
}

// ManagerConfig holds lifecycle manager configuration.
type ManagerConfig struct {
	// MaxInstances is the number of managed base instances, one per
	// possible gateway table index.
	MaxInstances int `envconfig:"LWM2M_MAX_INSTANCES" default:"16"`

	// MaxNodes is the number of dependent instance slots per base
	// instance.
	MaxNodes int `envconfig:"LWM2M_MAX_NODES" default:"8"`

	// LegacyInstanceOffset reserves instance IDs below it for the
	// gateway-managed range; the unmanaged create path rejects them.
	LegacyInstanceOffset uint16 `envconfig:"LWM2M_LEGACY_INSTANCE_OFFSET" default:"100"`
}

// StoreConfig holds configuration blob persistence settings.
type StoreConfig struct {
	Dir         string `envconfig:"LWM2M_CFG_DIR" default:"/storage/lwm2m_cfg"`
	MaxDataSize int    `envconfig:"LWM2M_CFG_MAX_DATA_SIZE" default:"256"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			MaxDevices:     16,
			InstanceOffset: 100,
			InstanceStride: 10,
		},
		Manager: ManagerConfig{
			MaxInstances:         16,
			MaxNodes:             8,
			LegacyInstanceOffset: 100,
		},
		Store: StoreConfig{
			Dir:         "/storage/lwm2m_cfg",
			MaxDataSize: 256,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
