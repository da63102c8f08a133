// Package blink exposes the toggler over the in-process bus: one
// retained config message builds the pin set, and per-pin control
// topics change rates at runtime.
package blink

import (
	"context"

	"blinkcode-go/bus"
	"blinkcode-go/errcode"
	"blinkcode-go/toggler"
	"blinkcode-go/types"
	"blinkcode-go/x/mathx"
	"blinkcode-go/x/timex"
)

var (
	topicConfig = bus.T("config", "blink")
	topicCtrl   = bus.T("blink", "pin", "+", "control", "+")
	topicState  = bus.T("blink", "state")
)

// Service owns the bus-facing control surface of the toggler. It never
// touches the tick path; all work here runs in application context.
type Service struct {
	conn *bus.Connection
	pins toggler.PinFactory
	src  toggler.TickSource // nil => toggler default; tests inject a manual source

	h   toggler.Handle
	set []toggler.OutputPin // resolved pins, by index

	ready bool
}

func New(conn *bus.Connection, pins toggler.PinFactory) *Service {
	return &Service{conn: conn, pins: pins}
}

func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	ctrlSub := s.conn.Subscribe(topicCtrl)
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			cfg, ok := msg.Payload.(types.BlinkConfig)
			if !ok {
				s.publishState("error", "config_wrong_type", nil)
				continue
			}
			if err := s.applyConfig(cfg); err != nil {
				s.publishState("error", "apply_config_failed", err)
				continue
			}
			s.publishState("ready", "configured", nil)

		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)
		}
	}
}

func (s *Service) applyConfig(cfg types.BlinkConfig) error {
	if s.ready {
		// The pin set is fixed for the process lifetime; a repeated
		// config may only re-state rates for the same number of pins.
		if len(cfg.Pins) != len(s.set) {
			return errcode.SizeMismatch
		}
		return s.applyRates(cfg)
	}

	set := make([]toggler.OutputPin, 0, len(cfg.Pins))
	for _, pc := range cfg.Pins {
		p, ok := s.pins.ByNumber(pc.Pin)
		if !ok {
			return &errcode.E{C: errcode.UnknownPin, Op: "blink.applyConfig"}
		}
		set = append(set, p)
	}

	hz := cfg.TickHz
	if hz != 0 {
		hz = mathx.Clamp(hz, 1, 1000)
	}
	h, err := toggler.Init(set, toggler.Options{TickHz: hz, Source: s.src})
	if err != nil {
		return err
	}
	s.h = h
	s.set = set
	s.ready = true
	return s.applyRates(cfg)
}

func (s *Service) applyRates(cfg types.BlinkConfig) error {
	for i, pc := range cfg.Pins {
		r := toggler.Off
		if pc.Rate != "" {
			var err error
			if r, err = toggler.ParseRate(pc.Rate); err != nil {
				return err
			}
		}
		if err := s.h.SetRate(i, r); err != nil {
			return err
		}
		s.publishValue(i)
	}
	return nil
}

func (s *Service) handleControl(msg *bus.Message) {
	if len(msg.Topic) < 5 {
		return
	}
	idx, ok := asInt(msg.Topic[2])
	if !ok {
		s.replyErr(msg, errcode.IndexOutOfRange)
		return
	}
	method, _ := msg.Topic[4].(string)

	switch method {
	case "set_rate":
		if !s.ready {
			s.replyErr(msg, errcode.NotInitialized)
			return
		}
		p, ok := msg.Payload.(types.SetRate)
		if !ok {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		r, err := toggler.ParseRate(p.Rate)
		if err != nil {
			s.replyErr(msg, errcode.Of(err))
			return
		}
		if err := s.h.SetRate(idx, r); err != nil {
			s.replyErr(msg, errcode.Of(err))
			return
		}
		s.conn.Reply(msg, types.OKReply{OK: true}, false)
		s.publishValue(idx)

	default:
		s.replyErr(msg, errcode.Unsupported)
	}
}

// publishValue refreshes the retained rate/level document for pin i.
func (s *Service) publishValue(i int) {
	r, err := toggler.RateOf(i)
	if err != nil {
		return
	}
	var lvl uint8
	if s.set[i].Get() {
		lvl = 1
	}
	s.conn.Publish(s.conn.NewMessage(
		bus.T("blink", "pin", i, "value"),
		types.RateValue{Pin: s.set[i].Number(), Rate: r.String(), Level: lvl, TS: timex.NowMs()},
		true,
	))
}

func (s *Service) publishState(level, status string, err error) {
	pl := types.BlinkState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		pl.Error = string(errcode.Of(err))
	}
	s.conn.Publish(s.conn.NewMessage(topicState, pl, true))
}

func (s *Service) replyErr(req *bus.Message, code errcode.Code) {
	if code == "" {
		code = errcode.Error
	}
	s.conn.Reply(req, types.ErrorReply{OK: false, Error: string(code)}, false)
}

func asInt(t any) (int, bool) {
	switch v := t.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}
