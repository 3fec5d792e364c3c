//go:build tinygo

package core

import "runtime/interrupt"

// maskInterrupts disables interrupts and returns the previous state.
// Used around the pending-edge handoff so the main context never observes
// a half-written capture.
func maskInterrupts() interrupt.State {
	return interrupt.Disable()
}

// unmaskInterrupts restores the interrupt state.
func unmaskInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
