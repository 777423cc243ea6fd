//go:build amd64 && !noasm

// ticks_amd64.go
//
// Go declaration for the cycle-counter read on amd64. The implementation
// lives in ticks_amd64.s and issues a bare RDTSC, keeping only the low-order
// 32 bits (EAX). Elapsed values that span a 32-bit wrap are undercounted;
// the stats plausibility filter is the mitigation, not a fix.

package tuner

// ticks returns the low 32 bits of the time-stamp counter.
//
//go:noescape
func ticks() uint32
