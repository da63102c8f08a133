package toggler

import (
	"sync"

	"blinkcode-go/errcode"
	"blinkcode-go/x/timex"
)

// DefaultTickHz matches the reference timer rate of the original
// hardware design: 8 ticks per second.
const DefaultTickHz = 8

// Options tunes Init. The zero value selects the defaults.
type Options struct {
	// TickHz is the tick source frequency. Zero selects DefaultTickHz.
	TickHz uint32
	// Source supplies the periodic callback. Nil selects TickerSource.
	Source TickSource
}

// Handle identifies the live pin set to its creator. It records the
// pin count declared at Init, so a zero or stale handle is rejected
// with size_mismatch instead of silently addressing the wrong table.
type Handle struct {
	n int
}

// Pins returns the pin count the handle was created with.
func (h Handle) Pins() int { return h.n }

var (
	mu   sync.Mutex
	inst *Toggler
)

// Init builds the process-wide managed pin set, configures every pin
// as output low, and arms the tick source. It may be called once per
// process; later calls report already_initialized and leave the first
// instance untouched. There is no teardown.
//
// The fixed per-pin storage (three words per pin) is allocated here,
// so call Init as early in startup as practical to keep the heap
// compact.
func Init(pins []OutputPin, o Options) (Handle, error) {
	mu.Lock()
	defer mu.Unlock()

	if inst != nil {
		return Handle{}, errcode.AlreadyInitialized
	}

	t, err := newToggler(pins)
	if err != nil {
		return Handle{}, err
	}

	hz := o.TickHz
	if hz == 0 {
		hz = DefaultTickHz
	}
	src := o.Source
	if src == nil {
		src = TickerSource{}
	}

	// The callback closes over the instance directly, so a tick can
	// never observe a half-built table: Arm runs only after newToggler
	// finished configuring every pin.
	if err := src.Arm(timex.PeriodFromHz(hz), t.Tick); err != nil {
		return Handle{}, err
	}

	inst = t
	return Handle{n: t.Len()}, nil
}

// SetRate changes the rate of pin i, after checking that the handle's
// declared pin count still matches the live instance.
func (h Handle) SetRate(i int, r Rate) error {
	t := live()
	if t == nil {
		return errcode.NotInitialized
	}
	if h.n != t.Len() {
		return errcode.SizeMismatch
	}
	return t.SetRate(i, r)
}

// SetRate changes the rate of pin i on the live instance. It mirrors
// the handle method for callers that did not run Init themselves.
func SetRate(i int, r Rate) error {
	t := live()
	if t == nil {
		return errcode.NotInitialized
	}
	return t.SetRate(i, r)
}

// RateOf reports the current rate of pin i on the live instance.
func RateOf(i int) (Rate, error) {
	t := live()
	if t == nil {
		return Off, errcode.NotInitialized
	}
	return t.RateOf(i)
}

// Pins returns the live pin count, or zero before Init.
func Pins() int {
	t := live()
	if t == nil {
		return 0
	}
	return t.Len()
}

func live() *Toggler {
	mu.Lock()
	defer mu.Unlock()
	return inst
}
