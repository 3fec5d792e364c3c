package core

import "time"

// RTC is the absolute time source. It keeps calendar time with one-second
// resolution and can route a 1 Hz square wave to a dedicated output pin.
// Accuracy and drift of the underlying crystal are the RTC's own business.
type RTC interface {
	// ReadTime returns the current calendar time. Seconds resolution;
	// the sub-second field of the result carries no information.
	ReadTime() (time.Time, error)

	// EnableSquareWave configures the RTC to emit its 1 Hz square wave
	// on the pulse output pin.
	EnableSquareWave() error
}

// LocalClock is the free-running local millisecond counter. It has no
// absolute meaning and wraps at 2^32 ms (~49.7 days); elapsed time between
// two readings is wraparound-correct uint32 subtraction.
type LocalClock interface {
	Millis() uint32
}

// PulseLine is the digital input the RTC square wave arrives on.
type PulseLine interface {
	// Read samples the current line level (true = high).
	Read() bool

	// SetEdgeHandler arms a falling-edge trigger. fn runs in interrupt
	// context on firmware targets and must do minimal work; host targets
	// call it from a dedicated goroutine instead.
	SetEdgeHandler(fn func())
}

// StatusSink receives two-line human-readable status text. Fatal renders a
// distinct error screen and returns; whether to spin, sleep or reset after a
// fatal condition is the embedding application's decision, not the sink's.
type StatusSink interface {
	Status(line1, line2 string)
	Fatal(line1, line2 string)
}

// NopSink discards all status output.
type NopSink struct{}

func (NopSink) Status(string, string) {}
func (NopSink) Fatal(string, string)  {}
