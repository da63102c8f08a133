// cmd/envblink/main.go
//go:build rp2040 || rp2350

// Drives the onboard LED blink rate from an SHTC3 sensor on i2c0: the
// warmer the board, the faster the blink. A quick visual check that
// both the sensor wiring and the output path work.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/shtc3"

	"blinkcode-go/internal/platform"
	"blinkcode-go/toggler"
	"blinkcode-go/x/mathx"
)

const (
	coldMilliC = 15000 // slow below 15 C
	hotMilliC  = 30000 // max above 30 C
)

var bands = []toggler.Rate{toggler.Slow, toggler.Medium, toggler.Fast, toggler.Max}

func main() {
	time.Sleep(2 * time.Second)
	println("[env] boot")

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		println("[env] i2c configure failed:", err.Error())
		return
	}
	sensor := shtc3.New(i2c)

	fac := platform.DefaultPinFactory()
	led, _ := fac.ByNumber(25)
	h, err := toggler.Init([]toggler.OutputPin{led}, toggler.Options{})
	if err != nil {
		println("[env] init failed:", err.Error())
		return
	}

	for {
		_ = sensor.WakeUp()
		tmc, rhx100, err := sensor.ReadTemperatureHumidity()
		_ = sensor.Sleep()
		if err != nil {
			println("[env] read failed:", err.Error())
			time.Sleep(5 * time.Second)
			continue
		}

		u := uint16(mathx.Clamp(tmc, coldMilliC, hotMilliC))
		idx := mathx.MapU16(u, coldMilliC, hotMilliC, 0, uint16(len(bands)-1))
		r := bands[idx]
		if err := h.SetRate(0, r); err != nil {
			println("[env] set_rate failed:", err.Error())
		}
		println("[env] mC:", tmc, "rh_x100:", rhx100, "rate:", r.String())

		time.Sleep(5 * time.Second)
	}
}
