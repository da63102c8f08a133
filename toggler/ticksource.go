package toggler

import (
	"time"

	"blinkcode-go/errcode"
)

// TickSource arms a periodic zero-argument callback at a fixed period.
// A source is armed exactly once, during Init; there is no disarm. The
// source owns whatever timer hardware or goroutine it needs and must
// invoke fn from a single context only.
type TickSource interface {
	Arm(period time.Duration, fn func()) error
}

// TickerSource drives ticks from the runtime timer. It is the default
// source on host and MCU builds alike.
type TickerSource struct{}

func (TickerSource) Arm(period time.Duration, fn func()) error {
	if period <= 0 {
		return errcode.InvalidParams
	}
	tick := time.NewTicker(period)
	go func() {
		for range tick.C {
			fn()
		}
	}()
	return nil
}
