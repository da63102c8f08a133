package types

// ------------------------
// Heartbeat
// ------------------------

// HeartbeatConfig is published retained on config/heartbeat.
type HeartbeatConfig struct {
	IntervalS uint32 `json:"interval_s"` // 0 => service default
}

// Heartbeat is the retained liveness document on system/heartbeat.
type Heartbeat struct {
	UptimeS uint32 `json:"uptime_s"`
	Pins    int    `json:"pins"` // managed output count, 0 before config
	TS      int64  `json:"ts_ms"`
}
