package main

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/internal/platform"
	"blinkcode-go/services/blink"
	"blinkcode-go/services/config"
	"blinkcode-go/services/heartbeat"
	"blinkcode-go/types"
)

// Composes the full stack: config defaults, heartbeat and the blink
// service over one in-process bus. Runs on the host against simulated
// pins and on RP2 boards against real GPIO.
func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "pico")
	b := bus.NewBus(8)

	svc := blink.New(b.NewConnection("blink"), platform.DefaultPinFactory())
	go svc.Run(ctx)
	go heartbeat.New(b.NewConnection("heartbeat")).Run(ctx)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	ui := b.NewConnection("ui")
	stateSub := ui.Subscribe(bus.T("blink", "state"))
	for {
		m := <-stateSub.Channel()
		st, ok := m.Payload.(types.BlinkState)
		if !ok {
			continue
		}
		println("[main] blink state:", st.Level, st.Status)
		if st.Level == "ready" {
			break
		}
		if st.Level == "error" {
			println("[main] config failed:", st.Error)
			return
		}
	}

	// Walk the third output through the whole rate table.
	rates := []string{"slow", "medium", "fast", "max", "off"}
	ctrl := bus.T("blink", "pin", 2, "control", "set_rate")
	for {
		for _, r := range rates {
			rctx, cancel := context.WithTimeout(ctx, time.Second)
			reply, err := ui.RequestWait(rctx, ui.NewMessage(ctrl, types.SetRate{Rate: r}, false))
			cancel()
			if err != nil {
				println("[main] set_rate timed out:", err.Error())
				continue
			}
			switch p := reply.Payload.(type) {
			case types.OKReply:
				println("[main] GP15 rate:", r)
			case types.ErrorReply:
				println("[main] set_rate rejected:", p.Error)
			}
			time.Sleep(2 * time.Second)
		}
	}
}
