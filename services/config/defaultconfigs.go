package config

import "blinkcode-go/types"

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Typed Go values rather than JSON text: nothing to parse at boot and
// mistakes fail at compile time.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// -----------------------------------------------------------------------------

var embeddedConfigs = map[string]map[string]any{
	"pico": {
		"blink": types.BlinkConfig{
			Pins: []types.BlinkPin{
				{Pin: 25, Rate: "slow"},
				{Pin: 14, Rate: "medium"},
				{Pin: 15},
			},
		},
		"heartbeat": types.HeartbeatConfig{IntervalS: 2},
	},
}
