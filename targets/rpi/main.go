//go:build linux && !tinygo

package main

import (
	"flag"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"pulsetime/core"
)

var (
	i2cName = flag.String("i2c", "", "I2C bus name (empty = first available)")
	pinName = flag.String("pin", "GPIO17", "GPIO carrying the RTC square wave")
)

// runtimeMillis derives the free-running millisecond counter from the Go
// runtime's monotonic clock. uint32 truncation matches the firmware counter.
type runtimeMillis struct {
	start time.Time
}

func (c *runtimeMillis) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// logSink prints status lines instead of driving a display.
type logSink struct{}

func (logSink) Status(line1, line2 string) { log.Printf("%s: %s", line1, line2) }
func (logSink) Fatal(line1, line2 string)  { log.Printf("fatal: %s: %s", line1, line2) }

func main() {
	log.SetPrefix("pulsetime: ")
	log.SetFlags(0)
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalf("periph init: %v", err)
	}

	bus, err := i2creg.Open(*i2cName)
	if err != nil {
		log.Fatalf("open i2c: %v", err)
	}
	defer bus.Close()

	pin := gpioreg.ByName(*pinName)
	if pin == nil {
		log.Fatalf("no such pin %q", *pinName)
	}
	pulse, err := newEdgePin(pin)
	if err != nil {
		log.Fatalf("configure %s: %v", *pinName, err)
	}

	local := &runtimeMillis{start: time.Now()}
	engine := core.NewEngine(newDS3231(bus), pulse, local, logSink{}, core.DefaultConfig())
	engine.Begin()

	buf := make([]byte, 0, core.TimestampLen)
	nextReport := local.Millis() + 1000
	for {
		engine.Update()

		now := local.Millis()
		if int32(now-nextReport) >= 0 {
			nextReport += 1000
			buf = engine.AppendTimestamp(buf[:0])
			log.Printf("%s epoch_ms=%d edge=%v", buf, engine.EpochMillis(), engine.UsingEdgeSync())
		}
		time.Sleep(time.Millisecond)
	}
}
