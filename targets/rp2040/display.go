//go:build rp2040 || rp2350

package main

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	displayAddr   = 0x3C
	displayWidth  = 128
	displayHeight = 32
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// oledSink renders two-line status text on an SSD1306. It implements
// core.StatusSink; Fatal draws a marked error screen and returns, leaving the
// halt decision to main.
type oledSink struct {
	dev ssd1306.Device
}

func newOLEDSink(bus drivers.I2C) *oledSink {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: displayAddr,
		Width:   displayWidth,
		Height:  displayHeight,
	})
	dev.ClearDisplay()
	return &oledSink{dev: dev}
}

func (s *oledSink) Status(line1, line2 string) {
	s.draw(line1, line2)
}

func (s *oledSink) Fatal(line1, line2 string) {
	s.draw("! "+line1, line2)
}

func (s *oledSink) draw(line1, line2 string) {
	s.dev.ClearBuffer()
	tinyfont.WriteLine(&s.dev, &proggy.TinySZ8pt7b, 0, 12, line1, white)
	tinyfont.WriteLine(&s.dev, &proggy.TinySZ8pt7b, 0, 28, line2, white)
	s.dev.Display()
}
