package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginSyncsOnFallingEdge(t *testing.T) {
	rtc := rtcAt(baseTime)
	// High for a few samples, then the falling edge.
	pulse := &fakePulse{levels: []bool{true, true, true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)

	ok := e.Begin()

	require.True(t, ok)
	assert.True(t, e.UsingEdgeSync())
	assert.True(t, e.Initialized())
	assert.Equal(t, ModeEdge, e.Mode())
	assert.True(t, rtc.sqwEnabled, "Begin must enable the square wave before sampling")
	assert.NotNil(t, pulse.handler, "edge handler must be armed after sync")
	assert.Equal(t, baseTime.Unix(), e.base.seconds)
	assert.Equal(t, clk.ms, e.base.millis, "baseline millis is the edge instant")
}

func TestBeginRequiresFallingNotRisingEdge(t *testing.T) {
	rtc := rtcAt(baseTime)
	// Low, then rising, then high forever: never a high-to-low transition.
	pulse := &fakePulse{levels: []bool{false, false, true, true}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)

	ok := e.Begin()

	assert.False(t, ok)
	assert.Equal(t, ModePolling, e.Mode())
}

func TestBeginTimeoutFallsBackToPolling(t *testing.T) {
	rtc := rtcAt(baseTime.Add(42 * time.Second))
	pulse := &fakePulse{levels: []bool{true}} // stuck high
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)

	ok := e.Begin()

	require.False(t, ok)
	assert.False(t, e.UsingEdgeSync())
	assert.True(t, e.Initialized(), "polling fallback still forms a baseline")
	assert.Nil(t, pulse.handler, "no edge handler in polling mode")
	assert.Equal(t, uint8(42), e.lastSecond)
	assert.Equal(t, rtc.now.Unix(), e.base.seconds)
	// The window is bounded: clock advanced past the 2.5 s budget.
	assert.GreaterOrEqual(t, clk.ms, uint32(2500))
}

func TestUpdateDrainsPendingEdge(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.True(t, e.Begin())

	// Scenario C: prior baseline at local=1000, edge captured at local=5000.
	e.base = baseline{seconds: baseTime.Unix(), millis: 1000}
	rtc.now = baseTime.Add(4 * time.Second)

	clk.ms = 5000
	pulse.Edge()
	e.Update()

	assert.Equal(t, uint32(5000), e.base.millis)
	assert.Equal(t, rtc.now.Unix(), e.base.seconds, "absolute side comes from a fresh RTC read")
}

func TestUpdateLastEdgeWins(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.True(t, e.Begin())
	readsAfterBegin := rtc.reads

	// Two edges before a drain: the first is silently superseded.
	clk.ms = 4000
	pulse.Edge()
	clk.ms = 5000
	pulse.Edge()
	e.Update()

	assert.Equal(t, uint32(5000), e.base.millis)
	assert.Equal(t, readsAfterBegin+1, rtc.reads, "one drain, one RTC read")

	// Drained: the same edge must not be applied twice.
	e.Update()
	assert.Equal(t, readsAfterBegin+1, rtc.reads)
}

func TestUpdateNoPendingEdgeIsIdempotent(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.True(t, e.Begin())

	before := e.base
	readsBefore := rtc.reads
	for i := 0; i < 10; i++ {
		e.Update()
	}
	assert.Equal(t, before, e.base)
	assert.Equal(t, readsBefore, rtc.reads, "no pending edge, no RTC read")
}

func TestPollingUpdatesOnSecondChangeOnly(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.False(t, e.Begin())

	// Scenario B: unchanged seconds field leaves the baseline alone.
	before := e.base
	clk.ms += 300
	e.Update()
	assert.Equal(t, before, e.base)

	// Seconds field ticks over: new baseline from the fresh read.
	rtc.now = baseTime.Add(time.Second)
	clk.ms += 700
	e.Update()
	assert.Equal(t, rtc.now.Unix(), e.base.seconds)
	assert.Equal(t, clk.ms, e.base.millis)
	assert.Equal(t, uint8(rtc.now.Second()), e.lastSecond)
}

func TestModeIsStableForLifetime(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.True(t, e.Begin())

	// However many edges arrive or fail to arrive, the mode holds.
	for i := 0; i < 5; i++ {
		clk.ms += 1000
		pulse.Edge()
		e.Update()
		e.Update()
		assert.Equal(t, ModeEdge, e.Mode())
	}
}

func TestMonotonicReconstructionBetweenResyncs(t *testing.T) {
	rtc := rtcAt(baseTime)
	pulse := &fakePulse{levels: []bool{true, false}}
	clk := &fakeClock{}
	e := newTestEngine(rtc, pulse, clk)
	require.True(t, e.Begin())

	prev := e.EpochMillis()
	for i := 0; i < 50; i++ {
		clk.ms += 37
		got := e.EpochMillis()
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestNeverSyncedFallsBackToCoarseRead(t *testing.T) {
	rtc := rtcAt(baseTime.Add(1500 * time.Millisecond))
	e := NewEngine(rtc, &fakePulse{}, &fakeClock{ms: 999}, nil, DefaultConfig())

	require.False(t, e.Initialized())
	// Millisecond field forced to zero, seconds straight from the RTC.
	assert.Equal(t, uint64(baseTime.Add(time.Second).Unix())*1000, e.EpochMillis())
	ts := string(e.AppendTimestamp(nil))
	assert.Equal(t, "2024-01-01 00:00:01.000", ts)
}

func TestBeginWithoutSquareWaveGoesStraightToPolling(t *testing.T) {
	rtc := rtcAt(baseTime)
	brokenSQW := &sqwFailRTC{fakeRTC: rtc}
	clk := &fakeClock{}
	e := newTestEngine(rtc, &fakePulse{}, clk)
	e.rtc = brokenSQW

	ok := e.Begin()

	assert.False(t, ok)
	assert.Equal(t, ModePolling, e.Mode())
	assert.Less(t, clk.ms, uint32(2500), "no point waiting out the window without a square wave")
}

type sqwFailRTC struct {
	*fakeRTC
}

func (r *sqwFailRTC) EnableSquareWave() error { return errSQW }

var errSQW = assert.AnError
