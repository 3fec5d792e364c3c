//go:build rp2040 || rp2350

package main

import (
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"
)

// DS3231 register/address constants for the raw control write the driver
// package does not cover.
const (
	rtcAddr    = 0x68
	regControl = 0x0E
)

// ds3231Clock adapts the DS3231 driver to core.RTC. Calendar reads go through
// the driver; the square-wave routing is a direct control-register write.
type ds3231Clock struct {
	dev ds3231.Device
	bus drivers.I2C
}

func newDS3231Clock(bus drivers.I2C) *ds3231Clock {
	return &ds3231Clock{dev: ds3231.New(bus), bus: bus}
}

// ready reports whether the RTC responds and its oscillator has been running
// since the time was last set.
func (c *ds3231Clock) ready() bool {
	return c.dev.Configure() && c.dev.IsTimeValid()
}

func (c *ds3231Clock) ReadTime() (time.Time, error) {
	return c.dev.ReadTime()
}

// EnableSquareWave routes the oscillator to the SQW pin. INTCN=0 selects the
// square wave over alarm interrupts; RS2=RS1=0 selects 1 Hz.
func (c *ds3231Clock) EnableSquareWave() error {
	return c.bus.Tx(rtcAddr, []byte{regControl, 0x00}, nil)
}
