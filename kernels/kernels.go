// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: kernels.go — Candidate bulk-copy kernels
//
// Purpose:
//   - Implements the interchangeable copy primitives the tuner selects among.
//   - Every kernel obeys one contract: copy min(len(dst), len(src)) bytes
//     from src into dst, any length, any alignment, buffers non-overlapping,
//     and return the byte count.
//
// Notes:
//   - Word kernels lean on unaligned 64-bit loads/stores (utils.Load64At /
//     utils.Store64At); the tail-overlap trick rewrites up to 7 bytes of
//     already-copied data instead of branching on the remainder.
//   - Kernels are deliberately NOT ranked here. Relative speed depends on
//     size, cache state and core contention; ranking is the tuner's job.
//
// ⚠️ Kernels must never allocate — they run inside GC-suppressed phases.
// ─────────────────────────────────────────────────────────────────────────────

package kernels

import "main/utils"

// Fn is the copy-kernel contract: copies min(len(dst), len(src)) bytes from
// src to dst and returns the count. Buffers must not overlap.
type Fn func(dst, src []byte) int

// Runtime delegates to the Go runtime's memmove, which already dispatches on
// the host's vector width. This is the baseline every other kernel has to
// beat, and the default selection before the first reoptimization.
//
//go:nosplit
func Runtime(dst, src []byte) int {
	return copy(dst, src)
}

// Trivial is the one-byte-at-a-time loop. It exists as a floor reference:
// if the tuner ever selects it on large copies, the measurement pipeline is
// broken.
//
//go:nosplit
func Trivial(dst, src []byte) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// Words copies in single 64-bit words with a byte tail.
//
//go:nosplit
func Words(dst, src []byte) int {
	n := min(len(dst), len(src))
	i := 0
	for ; n-i >= 8; i += 8 {
		utils.Store64At(dst, i, utils.Load64At(src, i))
	}
	for ; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// Unrolled2 copies 16 bytes per iteration (two independent words), letting
// the loads pipeline ahead of the stores.
//
//go:nosplit
func Unrolled2(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n <= 16 {
		return tail(dst, src, n)
	}
	i := 0
	for ; n-i >= 16; i += 16 {
		w0 := utils.Load64At(src, i)
		w1 := utils.Load64At(src, i+8)
		utils.Store64At(dst, i, w0)
		utils.Store64At(dst, i+8, w1)
	}
	return tail(dst[i:], src[i:], n-i) + i
}

// Unrolled4 copies 32 bytes per iteration.
//
//go:nosplit
func Unrolled4(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n <= 32 {
		return tail(dst, src, n)
	}
	i := 0
	for ; n-i >= 32; i += 32 {
		w0 := utils.Load64At(src, i)
		w1 := utils.Load64At(src, i+8)
		w2 := utils.Load64At(src, i+16)
		w3 := utils.Load64At(src, i+24)
		utils.Store64At(dst, i, w0)
		utils.Store64At(dst, i+8, w1)
		utils.Store64At(dst, i+16, w2)
		utils.Store64At(dst, i+24, w3)
	}
	return tail(dst[i:], src[i:], n-i) + i
}

// Unrolled8 copies 64 bytes (one cache line) per iteration. Registered only
// where the vector unit is wide enough for the backend to fuse the eight
// word moves (see the registry gating).
//
//go:nosplit
func Unrolled8(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n <= 64 {
		return tail(dst, src, n)
	}
	i := 0
	for ; n-i >= 64; i += 64 {
		w0 := utils.Load64At(src, i)
		w1 := utils.Load64At(src, i+8)
		w2 := utils.Load64At(src, i+16)
		w3 := utils.Load64At(src, i+24)
		w4 := utils.Load64At(src, i+32)
		w5 := utils.Load64At(src, i+40)
		w6 := utils.Load64At(src, i+48)
		w7 := utils.Load64At(src, i+56)
		utils.Store64At(dst, i, w0)
		utils.Store64At(dst, i+8, w1)
		utils.Store64At(dst, i+16, w2)
		utils.Store64At(dst, i+24, w3)
		utils.Store64At(dst, i+32, w4)
		utils.Store64At(dst, i+40, w5)
		utils.Store64At(dst, i+48, w6)
		utils.Store64At(dst, i+56, w7)
	}
	return tail(dst[i:], src[i:], n-i) + i
}

// Overlap copies forward in whole words and finishes with one unconditional
// word store over the last 8 bytes, written FIRST so the loop needs no
// remainder branch. The final word overlaps up to 7 already-copied bytes;
// src and dst never overlap each other, so the rewrite is idempotent.
//
//go:nosplit
func Overlap(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n < 8 {
		return tail(dst, src, n)
	}
	utils.Store64At(dst, n-8, utils.Load64At(src, n-8))
	i := 0
	for n-i > 8 {
		utils.Store64At(dst, i, utils.Load64At(src, i))
		i += 8
	}
	return n
}

// Backward copies from the high end toward the low end, with one head word
// stored up front to absorb the remainder. Some prefetchers track descending
// streams better under contention, which is exactly the kind of claim the
// tuner is there to settle.
//
//go:nosplit
func Backward(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n < 8 {
		return tail(dst, src, n)
	}
	utils.Store64(dst, utils.Load64(src))
	i := n
	for i > 8 {
		i -= 8
		utils.Store64At(dst, i, utils.Load64At(src, i))
	}
	return n
}

// tail copies n (< one unroll block) bytes using the overlapping-pair scheme
// small copies want: two possibly-overlapping fixed-width moves instead of a
// data-dependent loop.
//
//go:nosplit
func tail(dst, src []byte, n int) int {
	switch {
	case n >= 8:
		utils.Store64At(dst, n-8, utils.Load64At(src, n-8))
		i := 0
		for n-i > 8 {
			utils.Store64At(dst, i, utils.Load64At(src, i))
			i += 8
		}
	case n >= 4:
		copy4(dst, src, n)
	default:
		for i := 0; i < n; i++ {
			dst[i] = src[i]
		}
	}
	return n
}

// copy4 moves 4..7 bytes as two overlapping 32-bit halves.
//
//go:nosplit
func copy4(dst, src []byte, n int) {
	dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], src[3]
	dst[n-4], dst[n-3], dst[n-2], dst[n-1] = src[n-4], src[n-3], src[n-2], src[n-1]
}
