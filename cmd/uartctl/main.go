// cmd/uartctl/main.go
//go:build rp2040

// Line console on uart0 for poking blink rates from a serial terminal:
//
//	rate <index> <off|slow|medium|fast|max>
//	show
package main

import (
	"context"
	"machine"
	"strconv"
	"strings"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"blinkcode-go/internal/platform"
	"blinkcode-go/toggler"
)

func main() {
	time.Sleep(2 * time.Second)
	println("[uartctl] boot")

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	fac := platform.DefaultPinFactory()
	nums := []int{25, 14, 15}
	pins := make([]toggler.OutputPin, 0, len(nums))
	for _, n := range nums {
		p, _ := fac.ByNumber(n)
		pins = append(pins, p)
	}
	h, err := toggler.Init(pins, toggler.Options{})
	if err != nil {
		println("[uartctl] init failed:", err.Error())
		return
	}

	writeLine(u, "blink console ready, "+strconv.Itoa(h.Pins())+" pins")

	ctx := context.Background()
	var line []byte
	buf := make([]byte, 64)
	for {
		n, err := u.RecvSomeContext(ctx, buf)
		if err != nil {
			continue
		}
		for _, c := range buf[:n] {
			if c == '\r' {
				continue
			}
			if c != '\n' {
				line = append(line, c)
				continue
			}
			writeLine(u, run(h, string(line)))
			line = line[:0]
		}
	}
}

func run(h toggler.Handle, line string) string {
	args := strings.Fields(line)
	if len(args) == 0 {
		return ""
	}
	switch args[0] {
	case "rate":
		if len(args) != 3 {
			return "usage: rate <index> <off|slow|medium|fast|max>"
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return "bad index: " + args[1]
		}
		r, err := toggler.ParseRate(args[2])
		if err != nil {
			return "err: " + err.Error()
		}
		if err := h.SetRate(i, r); err != nil {
			return "err: " + err.Error()
		}
		return "ok"

	case "show":
		var sb strings.Builder
		for i := 0; i < h.Pins(); i++ {
			r, err := toggler.RateOf(i)
			if err != nil {
				return "err: " + err.Error()
			}
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(i))
			sb.WriteByte('=')
			sb.WriteString(r.String())
		}
		return sb.String()

	default:
		return "unknown command: " + args[0]
	}
}

func writeLine(u *uartx.UART, s string) {
	if s == "" {
		return
	}
	_, _ = u.Write([]byte(s + "\r\n"))
}
