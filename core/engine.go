// Millisecond-accurate timestamps from a coarse RTC and a free-running local
// millisecond counter. The RTC's 1 Hz square wave pins local time to absolute
// time once per second; between pulses the local counter fills in the
// sub-second part. If no pulse is observable the engine degrades to polling
// the RTC for second-boundary changes.
package core

import "time"

// SyncMode selects how the engine resynchronizes its baseline. Chosen once
// during Begin and fixed for the process lifetime.
type SyncMode uint8

const (
	ModeNone    SyncMode = iota // Begin not called yet
	ModeEdge                    // resync from the 1 Hz falling-edge interrupt
	ModePolling                 // resync on observed change of the RTC seconds field
)

// Config holds the engine's timing parameters. Zero fields take defaults.
type Config struct {
	// SyncTimeout bounds the startup edge-detection window. The source
	// pulses at 1 Hz, so the window must cover a full period with margin.
	SyncTimeout time.Duration

	// PollInterval is the pulse-line sample spacing during Begin.
	PollInterval time.Duration

	// Sleep paces the Begin poll loop. Platform code and tests may
	// replace it; nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultConfig returns the stock timing parameters.
func DefaultConfig() Config {
	return Config{
		SyncTimeout:  2500 * time.Millisecond,
		PollInterval: 100 * time.Microsecond,
		Sleep:        time.Sleep,
	}
}

// baseline is an aligned pair: seconds is the absolute calendar time (epoch
// seconds, RTC resolution) and millis is the local counter reading at the
// instant seconds became true. The two are only ever written together.
type baseline struct {
	seconds int64
	millis  uint32
}

// Engine is the time-synchronization engine. Allocate one per device and
// call Begin exactly once before anything else; Update from the main loop
// every iteration; the query operations whenever a timestamp is needed.
//
// Update and the queries must only be called from the single main context.
// The edge handler is the only code that runs in interrupt context.
type Engine struct {
	rtc   RTC
	pulse PulseLine
	local LocalClock
	sink  StatusSink
	cfg   Config

	// Pending edge capture. Written by the edge handler in interrupt
	// context, drained by Update with interrupts masked. Nothing else is
	// shared across the interrupt boundary.
	edgeMillis  uint32
	edgePending bool

	// Main-context state.
	base        baseline
	initialized bool
	mode        SyncMode
	lastSecond  uint8
}

// NewEngine wires the engine to its hardware collaborators. A nil sink
// discards status output.
func NewEngine(rtc RTC, pulse PulseLine, local LocalClock, sink StatusSink, cfg Config) *Engine {
	if cfg.SyncTimeout == 0 {
		cfg.SyncTimeout = 2500 * time.Millisecond
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 100 * time.Microsecond
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		rtc:   rtc,
		pulse: pulse,
		local: local,
		sink:  sink,
		cfg:   cfg,
	}
}

// Begin enables the RTC square wave and busy-polls the pulse line for one
// falling edge within the configured window. On success it forms the initial
// baseline from the edge, arms the edge interrupt and enters ModeEdge.
// If the window elapses without a qualifying transition it falls back to
// ModePolling: a degraded-mode signal, not an error.
//
// Returns true when edge sync was achieved. Runs exactly once, synchronously,
// before any other operation is valid.
func (e *Engine) Begin() bool {
	if err := e.rtc.EnableSquareWave(); err != nil {
		// No square wave means no edges worth waiting for.
		e.enterPollingMode()
		return false
	}
	// Let the output settle before sampling.
	e.cfg.Sleep(10 * time.Millisecond)

	start := e.local.Millis()
	budget := uint32(e.cfg.SyncTimeout / time.Millisecond)
	lastLevel := e.pulse.Read()

	for e.local.Millis()-start < budget {
		level := e.pulse.Read()
		if level != lastLevel {
			if lastLevel && !level {
				// Falling edge: this instant is a second boundary.
				edgeAt := e.local.Millis()
				t, err := e.rtc.ReadTime()
				if err == nil {
					e.base = baseline{seconds: t.Unix(), millis: edgeAt}
					e.initialized = true
					e.mode = ModeEdge
					e.pulse.SetEdgeHandler(e.captureEdge)
					e.sink.Status("time sync", "edge ok "+utoa(edgeAt-start)+"ms")
					return true
				}
			}
			lastLevel = level
		}
		e.cfg.Sleep(e.cfg.PollInterval)
	}

	e.enterPollingMode()
	return false
}

// enterPollingMode forms a coarse initial baseline from a direct RTC read and
// records the seconds field for boundary detection.
func (e *Engine) enterPollingMode() {
	if t, err := e.rtc.ReadTime(); err == nil {
		e.base = baseline{seconds: t.Unix(), millis: e.local.Millis()}
		e.lastSecond = uint8(t.Second())
		e.initialized = true
	}
	e.mode = ModePolling
	e.sink.Status("time sync", "polling fallback")
}

// captureEdge runs in interrupt context on every falling edge after Begin.
// It only timestamps the edge's local time; the RTC read is deferred to
// Update, which may be slow relative to interrupt constraints. A second edge
// arriving before Update drains the first overwrites it: last edge wins.
func (e *Engine) captureEdge() {
	state := maskInterrupts()
	e.edgeMillis = e.local.Millis()
	e.edgePending = true
	unmaskInterrupts(state)
}

// Update performs one reconciliation step. Call it every iteration of the
// main loop; both branches are O(1), never block and cost at most one RTC
// read. Skipping calls only delays resynchronization, never corrupts state.
func (e *Engine) Update() {
	switch e.mode {
	case ModeEdge:
		// Drain the pending capture with interrupts masked so the
		// handler can never be mid-write while we copy.
		state := maskInterrupts()
		pending := e.edgePending
		captured := e.edgeMillis
		e.edgePending = false
		unmaskInterrupts(state)
		if !pending {
			return
		}
		t, err := e.rtc.ReadTime()
		if err != nil {
			return
		}
		e.base = baseline{seconds: t.Unix(), millis: captured}

	case ModePolling:
		if !e.initialized {
			return
		}
		t, err := e.rtc.ReadTime()
		if err != nil {
			return
		}
		s := uint8(t.Second())
		if s == e.lastSecond {
			return
		}
		e.lastSecond = s
		e.base = baseline{seconds: t.Unix(), millis: e.local.Millis()}
	}
}

// UsingEdgeSync reports whether Begin achieved interrupt-driven edge sync.
func (e *Engine) UsingEdgeSync() bool {
	return e.mode == ModeEdge
}

// Initialized reports whether a baseline has ever been established.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Mode returns the sync mode chosen by Begin.
func (e *Engine) Mode() SyncMode {
	return e.mode
}
