//go:build linux && !tinygo

package main

import (
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	rtcAddr     = 0x68
	regTimedate = 0x00
	regControl  = 0x0E
)

// ds3231 reads a DS3231 over a periph.io I2C bus. The seven timekeeping
// registers are BCD-coded seconds through year.
type ds3231 struct {
	dev *i2c.Dev
}

func newDS3231(bus i2c.Bus) *ds3231 {
	return &ds3231{dev: &i2c.Dev{Bus: bus, Addr: rtcAddr}}
}

func (r *ds3231) ReadTime() (time.Time, error) {
	var reg [7]byte
	if err := r.dev.Tx([]byte{regTimedate}, reg[:]); err != nil {
		return time.Time{}, err
	}
	sec := bcd(reg[0] & 0x7F)
	min := bcd(reg[1] & 0x7F)
	hour := bcd(reg[2] & 0x3F) // 24-hour mode assumed
	day := bcd(reg[4] & 0x3F)
	month := bcd(reg[5] & 0x1F)
	year := 2000 + bcd(reg[6])
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC), nil
}

// EnableSquareWave routes the oscillator to the SQW pin at 1 Hz
// (INTCN=0, RS2=RS1=0).
func (r *ds3231) EnableSquareWave() error {
	return r.dev.Tx([]byte{regControl, 0x00}, nil)
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}
