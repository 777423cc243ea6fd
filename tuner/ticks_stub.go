//go:build !amd64 || noasm

// ticks_stub.go
//
// Portable fall-back for targets without the RDTSC shim: monotonic
// nanoseconds since process start, truncated to 32 bits. Same wraparound
// caveat as the hardware counter, same mitigation (plausibility filter).

package tuner

import "time"

var tickEpoch = time.Now()

// ticks returns truncated monotonic nanoseconds.
func ticks() uint32 {
	return uint32(time.Since(tickEpoch))
}
