package toggler

// OutputPin is the subset of a GPIO pin the toggler drives. Set, Get
// and Toggle must be safe to call from the tick callback.
type OutputPin interface {
	Number() int
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
}

// PinFactory supplies output pins by the configured number scheme.
// Implemented per board under internal/platform.
type PinFactory interface {
	ByNumber(n int) (OutputPin, bool)
}
