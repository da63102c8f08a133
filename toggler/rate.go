package toggler

import "blinkcode-go/errcode"

// Rate selects how fast a managed pin toggles relative to the tick
// frequency. The numeric value is the amount added to the pin's counter
// on every tick, so a pin at rate r toggles every threshold/r ticks.
type Rate uint8

const (
	Off    Rate = 0
	Slow   Rate = 1
	Medium Rate = 2
	Fast   Rate = 4
	Max    Rate = 8
)

// threshold is the counter value at which a pin toggles and its counter
// wraps to zero. At the default 8 Hz tick a pin at Max toggles on every
// tick, giving a full square wave at 4 Hz.
const threshold = 8

// Valid reports whether r is one of the five rate levels.
func (r Rate) Valid() bool {
	switch r {
	case Off, Slow, Medium, Fast, Max:
		return true
	}
	return false
}

func (r Rate) String() string {
	switch r {
	case Off:
		return "off"
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	case Max:
		return "max"
	}
	return "invalid"
}

// ParseRate maps a wire/config name to a Rate.
func ParseRate(s string) (Rate, error) {
	switch s {
	case "off":
		return Off, nil
	case "slow":
		return Slow, nil
	case "medium":
		return Medium, nil
	case "fast":
		return Fast, nil
	case "max":
		return Max, nil
	}
	return Off, errcode.InvalidRate
}
