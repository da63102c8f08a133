// cmd/pico-blink/main.go
//go:build rp2040 || rp2350

// Blinks the onboard LED and two external outputs on a Pico using the
// toggler API directly, without the bus layer.
package main

import (
	"time"

	"blinkcode-go/internal/platform"
	"blinkcode-go/toggler"
)

func main() {
	time.Sleep(2 * time.Second)
	println("[blink] boot")

	fac := platform.DefaultPinFactory()
	nums := []int{25, 14, 15} // onboard LED, then two header pins
	pins := make([]toggler.OutputPin, 0, len(nums))
	for _, n := range nums {
		p, ok := fac.ByNumber(n)
		if !ok {
			println("[blink] no such pin:", n)
			return
		}
		pins = append(pins, p)
	}

	h, err := toggler.Init(pins, toggler.Options{})
	if err != nil {
		println("[blink] init failed:", err.Error())
		return
	}
	println("[blink] managing", h.Pins(), "pins at 8 Hz")

	_ = h.SetRate(0, toggler.Slow)
	_ = h.SetRate(1, toggler.Medium)

	// Step the third output through the rate table forever.
	rates := []toggler.Rate{toggler.Slow, toggler.Medium, toggler.Fast, toggler.Max, toggler.Off}
	for {
		for _, r := range rates {
			if err := h.SetRate(2, r); err != nil {
				println("[blink] set_rate failed:", err.Error())
			} else {
				println("[blink] GP15 rate:", r.String())
			}
			time.Sleep(4 * time.Second)
		}
	}
}
