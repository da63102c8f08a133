package bus

import (
	"context"
	"testing"
	"time"
)

func expectOneOf(t *testing.T, s *Subscription, want any) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload != want {
			t.Fatalf("expected payload %v, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %v", want)
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Fatalf("unexpected message: %v", got.Payload)
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("config", "blink"))

	conn.Publish(conn.NewMessage(T("config", "blink"), "hello", false))

	expectOneOf(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("config", "blink"), "persist", true))

	sub := conn.Subscribe(T("config", "blink"))
	expectOneOf(t, sub, "persist")
}

func TestRetainedCleared(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("blink", "state"), "up", true))
	conn.Publish(conn.NewMessage(T("blink", "state"), nil, true))

	sub := conn.Subscribe(T("blink", "state"))
	expectNoMessage(t, sub)
}

// -----------------------------------------------------------------------------
// Wildcards
// -----------------------------------------------------------------------------

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("blink", WildOne, "value"))
	s2 := c.Subscribe(T("blink", WildOne, WildOne))
	sNo := c.Subscribe(T("blink", WildOne, "state"))

	c.Publish(c.NewMessage(T("blink", 0, "value"), "m1", false))

	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectNoMessage(t, sNo)

	// Too-short topics never match a longer pattern.
	c.Publish(c.NewMessage(T("blink", 0), "m2", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, sNo)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sHash := c.Subscribe(T("blink", WildAny))
	sDeep := c.Subscribe(T("blink", "pin", WildAny))

	c.Publish(c.NewMessage(T("blink"), "p1", false))
	expectOneOf(t, sHash, "p1")
	expectNoMessage(t, sDeep)

	c.Publish(c.NewMessage(T("blink", "pin", 2, "control", "set_rate"), "p2", false))
	expectOneOf(t, sHash, "p2")
	expectOneOf(t, sDeep, "p2")
}

func TestWildcard_RetainedDeliveredOnSubscribe(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("blink", "pin", 0, "value"), "v0", true))
	c.Publish(c.NewMessage(T("blink", "pin", 1, "value"), "v1", true))

	sub := c.Subscribe(T("blink", "pin", WildOne, "value"))

	got := map[any]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			got[m.Payload] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained values")
		}
	}
	if !got["v0"] || !got["v1"] {
		t.Fatalf("missing retained values: %v", got)
	}
}

// -----------------------------------------------------------------------------
// Request / reply
// -----------------------------------------------------------------------------

func TestRequestWait(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("svc")
	cli := b.NewConnection("cli")

	ctrl := svc.Subscribe(T("blink", "pin", 0, "control", "set_rate"))
	go func() {
		m := <-ctrl.Channel()
		svc.Reply(m, "ok", false)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reply, err := cli.RequestWait(ctx, cli.NewMessage(T("blink", "pin", 0, "control", "set_rate"), "fast", false))
	if err != nil {
		t.Fatalf("RequestWait: %v", err)
	}
	if reply.Payload != "ok" {
		t.Fatalf("unexpected reply payload: %v", reply.Payload)
	}
}

func TestRequestWait_ContextCancelled(t *testing.T) {
	b := NewBus(4)
	cli := b.NewConnection("cli")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nobody is listening; the request must time out.
	_, err := cli.RequestWait(ctx, cli.NewMessage(T("nowhere"), nil, false))
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("blink", "state"))
	sub.Unsubscribe()

	c.Publish(c.NewMessage(T("blink", "state"), "late", false))
	expectNoMessage(t, sub)
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(1)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("spam"))
	c.Publish(c.NewMessage(T("spam"), 1, false))
	c.Publish(c.NewMessage(T("spam"), 2, false))

	expectOneOf(t, sub, 2)
}
