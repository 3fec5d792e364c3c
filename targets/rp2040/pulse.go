//go:build rp2040 || rp2350

package main

import "machine"

// sqwPin exposes the GPIO carrying the RTC square wave as a core.PulseLine.
type sqwPin struct {
	pin machine.Pin
}

func newSQWPin(pin machine.Pin) *sqwPin {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &sqwPin{pin: pin}
}

func (p *sqwPin) Read() bool {
	return p.pin.Get()
}

func (p *sqwPin) SetEdgeHandler(fn func()) {
	// The callback runs in interrupt context; fn only timestamps the edge.
	p.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		fn()
	})
}
