//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"pulsetime/core"
)

// SQW output of the DS3231, input with pull-up.
const sqwGPIO = machine.GP2

// Scratch for one telemetry line; the serial path never allocates.
var lineBuf [core.TimestampLen + 32]byte

func main() {
	// Disable the watchdog on boot to clear any state a previous reset
	// left behind.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400000}); err != nil {
		return
	}

	sink := newOLEDSink(machine.I2C0)
	sink.Status("pulsetime", "starting")

	rtc := newDS3231Clock(machine.I2C0)
	if !rtc.ready() {
		// Bring-up failure is the one fatal condition; the halt policy
		// lives here, not in the sink or the engine.
		sink.Fatal("rtc", "not responding")
		for {
			time.Sleep(time.Second)
		}
	}

	local := hwMillis{}
	engine := core.NewEngine(rtc, newSQWPin(sqwGPIO), local, sink, core.DefaultConfig())
	engine.Begin()

	nextReport := local.Millis() + 1000
	for {
		engine.Update()

		now := local.Millis()
		if int32(now-nextReport) >= 0 {
			nextReport += 1000
			report(engine, sink)
		}
	}
}

// report emits one CSV telemetry line over USB serial and refreshes the
// display. Format: "YYYY-MM-DD HH:MM:SS.mmm,<epoch_millis>,<mode>".
func report(engine *core.Engine, sink *oledSink) {
	line := engine.AppendTimestamp(lineBuf[:0])
	stampLen := len(line)
	line = append(line, ',')
	line = core.AppendUint(line, engine.EpochMillis())
	line = append(line, ',', modeChar(engine), '\r', '\n')
	machine.Serial.Write(line)

	sink.Status(modeLabel(engine), string(line[:stampLen]))
}

func modeChar(engine *core.Engine) byte {
	if engine.UsingEdgeSync() {
		return 'E'
	}
	return 'P'
}

func modeLabel(engine *core.Engine) string {
	if engine.UsingEdgeSync() {
		return "sync: edge"
	}
	return "sync: polling"
}
