// Package heartbeat publishes a retained liveness document so a host
// attached over serial can tell the firmware is up and how many
// outputs it is driving.
package heartbeat

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/errcode"
	"blinkcode-go/toggler"
	"blinkcode-go/types"
	"blinkcode-go/x/timex"
)

const defaultInterval = 2 * time.Second

var (
	topicConfig = bus.T("config", "heartbeat")
	topicBeat   = bus.T("system", "heartbeat")
)

type Service struct {
	conn  *bus.Connection
	start time.Time
}

func New(conn *bus.Connection) *Service {
	return &Service{conn: conn, start: time.Now()}
}

func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	s.beat()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.beat()
		case msg := <-cfgSub.Channel():
			cfg, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok {
				println("[heartbeat] config:", string(errcode.InvalidParams))
				continue
			}
			if cfg.IntervalS > 0 {
				tick.Reset(time.Duration(cfg.IntervalS) * time.Second)
			}
		}
	}
}

func (s *Service) beat() {
	s.conn.Publish(s.conn.NewMessage(topicBeat, types.Heartbeat{
		UptimeS: uint32(time.Since(s.start) / time.Second),
		Pins:    toggler.Pins(),
		TS:      timex.NowMs(),
	}, true))
}
