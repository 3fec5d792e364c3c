//go:build linux && !tinygo

package main

import "periph.io/x/conn/v3/gpio"

// edgePin adapts a periph.io GPIO to core.PulseLine. There is no interrupt
// context on Linux; a goroutine blocks in WaitForEdge and plays that role.
type edgePin struct {
	pin gpio.PinIO
}

func newEdgePin(pin gpio.PinIO) (*edgePin, error) {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, err
	}
	return &edgePin{pin: pin}, nil
}

func (p *edgePin) Read() bool {
	return p.pin.Read() == gpio.High
}

func (p *edgePin) SetEdgeHandler(fn func()) {
	go func() {
		for {
			if p.pin.WaitForEdge(-1) {
				fn()
			}
		}
	}()
}
