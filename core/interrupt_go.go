//go:build !tinygo

package core

import "sync"

// On host builds there is no interrupt controller: edges arrive from a
// goroutine (targets/rpi) or from direct calls in tests. The mask is a real
// critical section here so the handoff stays race-free under -race.
var maskMu sync.Mutex

type maskState struct{}

func maskInterrupts() maskState {
	maskMu.Lock()
	return maskState{}
}

func unmaskInterrupts(maskState) {
	maskMu.Unlock()
}
