// Package toggler drives a fixed set of digital output pins from a
// single periodic tick source, toggling each pin independently at one
// of five discrete rates. One instance exists per process; see Init.
package toggler

import (
	"sync/atomic"

	"blinkcode-go/errcode"
)

// Toggler holds the managed pin set: one pin, one counter and one
// increment per entry. The set is sized once and never grows.
type Toggler struct {
	pins []OutputPin

	// counts are touched only by the tick callback.
	counts []uint32

	// incs are written by SetRate (application context) and read by the
	// tick callback. Accesses are single-width atomics, so a concurrent
	// rate change lands either this tick or the next, never torn.
	incs []uint32
}

func newToggler(pins []OutputPin) (*Toggler, error) {
	if len(pins) == 0 {
		return nil, errcode.InvalidParams
	}
	t := &Toggler{
		pins:   pins,
		counts: make([]uint32, len(pins)),
		incs:   make([]uint32, len(pins)),
	}
	for _, p := range pins {
		if p == nil {
			return nil, errcode.UnknownPin
		}
		if err := p.ConfigureOutput(false); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Tick advances every managed pin by one scheduling step: add the
// pin's increment to its counter and toggle when the counter crosses
// the threshold. Called from the armed tick source only; it is the
// sole writer of the counters. It never fails, blocks or allocates.
func (t *Toggler) Tick() {
	for i := range t.pins {
		c := t.counts[i] + atomic.LoadUint32(&t.incs[i])
		if c >= threshold {
			c = 0
			t.pins[i].Toggle()
		}
		t.counts[i] = c
	}
}

// SetRate stores the increment for pin i. The change is observed at
// the next tick boundary; elapsed ticks are not re-applied. Off leaves
// the output frozen at its current level.
func (t *Toggler) SetRate(i int, r Rate) error {
	if i < 0 || i >= len(t.pins) {
		return errcode.IndexOutOfRange
	}
	if !r.Valid() {
		return errcode.InvalidRate
	}
	atomic.StoreUint32(&t.incs[i], uint32(r))
	return nil
}

// RateOf reports the current rate of pin i.
func (t *Toggler) RateOf(i int) (Rate, error) {
	if i < 0 || i >= len(t.pins) {
		return Off, errcode.IndexOutOfRange
	}
	return Rate(atomic.LoadUint32(&t.incs[i])), nil
}

// Len returns the number of managed pins.
func (t *Toggler) Len() int { return len(t.pins) }
