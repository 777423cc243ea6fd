// utils.go — Zero-allocation primitives shared by the hot and cold paths:
// unsafe string/slice casts, unaligned word access for the copy kernels,
// the avalanche mixer for exploration sampling, and raw stderr output.

package utils

import (
	"syscall"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
// Used for human-readable print paths.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// s2b converts a string to a []byte without allocation for write syscalls.
// The slice must never be mutated.
//
//go:nosplit
//go:inline
func s2b(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

///////////////////////////////////////////////////////////////////////////////
// Fast Loaders & Stores — Unaligned 64-Bit Word Access
///////////////////////////////////////////////////////////////////////////////

// Load64 reads an unaligned 64-bit word from a byte slice.
//
//go:nosplit
//go:inline
func Load64(b []byte) uint64 {
	return *(*uint64)(unsafe.Pointer(&b[0]))
}

// Store64 writes an unaligned 64-bit word into a byte slice.
//
//go:nosplit
//go:inline
func Store64(b []byte, v uint64) {
	*(*uint64)(unsafe.Pointer(&b[0])) = v
}

// Load64At reads an unaligned 64-bit word at byte offset i.
//
//go:nosplit
//go:inline
func Load64At(b []byte, i int) uint64 {
	return *(*uint64)(unsafe.Pointer(&b[i]))
}

// Store64At writes an unaligned 64-bit word at byte offset i.
//
//go:nosplit
//go:inline
func Store64At(b []byte, i int, v uint64) {
	*(*uint64)(unsafe.Pointer(&b[i])) = v
}

///////////////////////////////////////////////////////////////////////////////
// Hash & Mixers — For Pseudo-Random Kernel Sampling
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies a Murmur3-style avalanche to a 64-bit value.
// Used to spread the exploration counter across the kernel set so the
// sampling order looks random while staying a pure function of the counter.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

///////////////////////////////////////////////////////////////////////////////
// Cold-Path Formatting & Output
///////////////////////////////////////////////////////////////////////////////

// Itoa formats a signed integer without pulling in strconv. Cold paths only;
// the single small allocation for the result string is acceptable there.
func Itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// PrintWarning writes msg straight to stderr (fd 2) with no heap allocation,
// bypassing the fmt machinery entirely. Safe in GC-suppressed phases.
//
//go:nosplit
func PrintWarning(msg string) {
	if len(msg) == 0 {
		return
	}
	_, _ = syscall.Write(2, s2b(msg))
}
