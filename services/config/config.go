// Package config publishes the embedded per-device defaults as
// retained messages at boot, one message per config topic. Services
// pick their config up whenever they subscribe, so start order does
// not matter.
package config

import (
	"context"
	"errors"

	"blinkcode-go/bus"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) (map[string]any, bool) {
	m, ok := embeddedConfigs[device]
	return m, ok
}

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig resolves the device defaults and publishes each entry
// retained on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}

	m, ok := EmbeddedConfigLookup(device)
	if !ok || len(m) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	for k, v := range m {
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		})
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
