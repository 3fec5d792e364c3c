//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040/RP2350 timer peripheral: a 64-bit free-running microsecond counter.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // raw timer high word
	timerTIMERAWL = timerBase + 0x0C // raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// timerUptime reads the full 64-bit microsecond counter. High word is read
// twice to detect a rollover between the two halves.
func timerUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// hwMillis is the core.LocalClock backed by the hardware timer. The uint32
// truncation gives the free-running, wrapping millisecond counter the engine
// expects.
type hwMillis struct{}

func (hwMillis) Millis() uint32 {
	return uint32(timerUptime() / 1000)
}
