package core

import "time"

// fakeClock is a settable LocalClock.
type fakeClock struct {
	ms uint32
}

func (c *fakeClock) Millis() uint32 { return c.ms }

// fakeRTC serves a settable calendar time and counts reads.
type fakeRTC struct {
	now        time.Time
	err        error
	sqwEnabled bool
	reads      int
}

func (r *fakeRTC) ReadTime() (time.Time, error) {
	r.reads++
	return r.now, r.err
}

func (r *fakeRTC) EnableSquareWave() error {
	r.sqwEnabled = true
	return nil
}

// fakePulse replays a scripted sequence of line levels, one per Read.
// The last level repeats once the script is exhausted.
type fakePulse struct {
	levels  []bool
	handler func()
}

func (p *fakePulse) Read() bool {
	if len(p.levels) == 0 {
		return true
	}
	level := p.levels[0]
	if len(p.levels) > 1 {
		p.levels = p.levels[1:]
	}
	return level
}

func (p *fakePulse) SetEdgeHandler(fn func()) { p.handler = fn }

// Edge simulates a hardware falling edge firing the armed handler.
func (p *fakePulse) Edge() { p.handler() }

// newTestEngine builds an engine whose Begin loop is paced by advancing the
// fake clock instead of sleeping.
func newTestEngine(rtc *fakeRTC, pulse *fakePulse, clk *fakeClock) *Engine {
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	cfg.Sleep = func(d time.Duration) {
		clk.ms += uint32(d / time.Millisecond)
	}
	return NewEngine(rtc, pulse, clk, nil, cfg)
}

func rtcAt(t time.Time) *fakeRTC { return &fakeRTC{now: t} }

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
