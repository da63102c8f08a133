package heartbeat

import (
	"context"
	"testing"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/types"
)

func TestRetainedBeatOnStart(t *testing.T) {
	b := bus.NewBus(8)
	svc := New(b.NewConnection("heartbeat"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	ui := b.NewConnection("ui")
	// Late subscriber still sees the beat through retention.
	time.Sleep(50 * time.Millisecond)
	sub := ui.Subscribe(bus.T("system", "heartbeat"))
	select {
	case m := <-sub.Channel():
		hb, ok := m.Payload.(types.Heartbeat)
		if !ok {
			t.Fatalf("unexpected payload: %+v", m.Payload)
		}
		if hb.TS == 0 {
			t.Fatal("beat has no timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("no retained heartbeat")
	}
}
