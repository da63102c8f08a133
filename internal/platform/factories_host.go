// internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"blinkcode-go/toggler"
)

// SimPin implements toggler.OutputPin on the host. The level is guarded
// by a mutex so the tick goroutine and readers never race.
type SimPin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
}

func (p *SimPin) Number() int { return p.number }

func (p *SimPin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *SimPin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *SimPin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *SimPin) Toggle() { p.Set(!p.Get()) }

// HostPinFactory returns stable *SimPin instances per number. The same
// GP0..GP28 range applies as on the RP2 boards so host runs and target
// runs accept the same configs.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*SimPin
}

func (f *HostPinFactory) ByNumber(n int) (toggler.OutputPin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*SimPin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &SimPin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *SimPin for tests.
func (f *HostPinFactory) Get(n int) (*SimPin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() toggler.PinFactory {
	return &HostPinFactory{pins: make(map[int]*SimPin)}
}
