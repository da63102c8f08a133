package toggler

import (
	"testing"
	"time"
)

// resetForTest clears the process-wide instance between test cases.
// Production code has no teardown path on purpose.
func resetForTest() {
	mu.Lock()
	inst = nil
	mu.Unlock()
}

// manualSource records the armed period and fires ticks synchronously.
type manualSource struct {
	period time.Duration
	fn     func()
}

func (m *manualSource) Arm(period time.Duration, fn func()) error {
	m.period = period
	m.fn = fn
	return nil
}

func (m *manualSource) tick(n int) {
	for ; n > 0; n-- {
		m.fn()
	}
}

func initSet(t *testing.T, n int) ([]*fakePin, *manualSource, Handle) {
	t.Helper()
	resetForTest()
	fakes := make([]*fakePin, n)
	pins := make([]OutputPin, n)
	for i := range fakes {
		fakes[i] = &fakePin{n: i, level: true}
		pins[i] = fakes[i]
	}
	src := &manualSource{}
	h, err := Init(pins, Options{Source: src})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return fakes, src, h
}

func TestSetRateBeforeInit(t *testing.T) {
	resetForTest()
	if err := SetRate(0, Slow); err == nil || err.Error() != "not_initialized" {
		t.Fatalf("expected not_initialized, got %v", err)
	}
	if _, err := RateOf(0); err == nil {
		t.Fatal("expected not_initialized from RateOf")
	}
	if Pins() != 0 {
		t.Fatalf("expected 0 pins before init, got %d", Pins())
	}
}

func TestInitOnce(t *testing.T) {
	fakes, src, h := initSet(t, 2)

	other := []OutputPin{&fakePin{n: 9, level: true}}
	if _, err := Init(other, Options{Source: &manualSource{}}); err == nil {
		t.Fatal("expected already_initialized")
	} else if err.Error() != "already_initialized" {
		t.Fatalf("wrong error: %v", err)
	}
	// The rejected call must not touch the new pins or the live set.
	if !other[0].(*fakePin).level {
		t.Fatal("rejected init configured a pin")
	}
	if err := h.SetRate(0, Max); err != nil {
		t.Fatalf("live instance unusable after rejected init: %v", err)
	}
	src.tick(2)
	if fakes[0].toggles != 2 {
		t.Fatalf("live instance stopped ticking: %d", fakes[0].toggles)
	}
}

func TestInitEmptySet(t *testing.T) {
	resetForTest()
	if _, err := Init(nil, Options{Source: &manualSource{}}); err == nil {
		t.Fatal("expected invalid_params")
	}
	// A rejected init leaves the slot free.
	if _, _, h := initSet(t, 1); h.Pins() != 1 {
		t.Fatal("init after rejected init failed")
	}
}

func TestHandleSizeMismatch(t *testing.T) {
	fakes, src, _ := initSet(t, 3)

	var stale Handle // declared size 0, does not match the live set
	if err := stale.SetRate(0, Max); err == nil || err.Error() != "size_mismatch" {
		t.Fatalf("expected size_mismatch, got %v", err)
	}
	src.tick(8)
	for i, p := range fakes {
		if p.toggles != 0 {
			t.Fatalf("pin %d toggled after rejected handle call", i)
		}
	}
}

func TestHandleAndPackageSetRate(t *testing.T) {
	fakes, src, h := initSet(t, 2)

	if err := h.SetRate(0, Slow); err != nil {
		t.Fatalf("handle SetRate: %v", err)
	}
	if err := SetRate(1, Max); err != nil {
		t.Fatalf("package SetRate: %v", err)
	}
	src.tick(8)
	if fakes[0].toggles != 1 || fakes[1].toggles != 8 {
		t.Fatalf("unexpected toggles: %d, %d", fakes[0].toggles, fakes[1].toggles)
	}
	if r, _ := RateOf(0); r != Slow {
		t.Fatalf("RateOf(0) = %v", r)
	}
	if Pins() != 2 {
		t.Fatalf("Pins() = %d", Pins())
	}
}

func TestDefaultPeriodIs8Hz(t *testing.T) {
	resetForTest()
	src := &manualSource{}
	if _, err := Init([]OutputPin{&fakePin{}}, Options{Source: src}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if src.period != time.Second/8 {
		t.Fatalf("default period = %v, want 125ms", src.period)
	}
}

func TestCustomTickHz(t *testing.T) {
	resetForTest()
	src := &manualSource{}
	if _, err := Init([]OutputPin{&fakePin{}}, Options{TickHz: 100, Source: src}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if src.period != 10*time.Millisecond {
		t.Fatalf("period = %v, want 10ms", src.period)
	}
}
