package types

// ------------------------
// Blink configuration
// ------------------------

// BlinkConfig is published retained on config/blink and consumed once
// by the blink service. The pin set is fixed for the process lifetime;
// a later config may only re-state the same number of pins.
type BlinkConfig struct {
	TickHz uint32     `json:"tick_hz,omitempty"` // 0 => service default
	Pins   []BlinkPin `json:"pins"`
}

// BlinkPin declares one managed output, in pin-index order.
type BlinkPin struct {
	Pin  int    `json:"pin"`
	Rate string `json:"rate,omitempty"` // "off" when empty
}

// ------------------------
// Control payloads
// ------------------------

// SetRate is the payload for blink/pin/<i>/control/set_rate.
type SetRate struct {
	Rate string `json:"rate"` // "off","slow","medium","fast","max"
}

// ------------------------
// Published documents
// ------------------------

// RateValue is the retained per-pin document on blink/pin/<i>/value.
type RateValue struct {
	Pin   int    `json:"pin"`
	Rate  string `json:"rate"`
	Level uint8  `json:"level"`
	TS    int64  `json:"ts_ms"`
}

// BlinkState is the retained service state on blink/state.
type BlinkState struct {
	Level  string `json:"level"`  // "idle", "ready", "error", "stopped"
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`
	Error  string `json:"error,omitempty"`
}

// ------------------------
// Generic replies
// ------------------------

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
