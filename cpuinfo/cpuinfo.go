// cpuinfo.go — CPU capability and cache-geometry snapshot
//
// Thin wrapper over golang.org/x/sys/cpu (feature flags used to gate kernel
// registration) and klauspost/cpuid (brand string and cache sizes recorded
// alongside benchmark results). All values are fixed at process start.

package cpuinfo

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// WideVectors reports whether the CPU carries a wide vector unit worth
// feeding with 64-byte unrolled copy loops. On x86 that means AVX2 or
// better; on arm64 the baseline ASIMD unit already sustains 64-byte bursts.
// Everything else gets the narrower kernels only.
//
//go:inline
func WideVectors() bool {
	return cpu.X86.HasAVX2 || cpu.X86.HasAVX512F || cpu.ARM64.HasASIMD
}

// Erms reports x86 Enhanced REP MOVSB support. Purely informational in this
// codebase (the runtime kernel already exploits it where present); recorded
// with results so runs on different parts can be compared honestly.
//
//go:inline
func Erms() bool {
	return cpu.X86.HasERMS
}

// Brand returns the CPU brand string for result records, or "unknown" when
// the platform exposes none.
func Brand() string {
	if b := cpuid.CPU.BrandName; b != "" {
		return b
	}
	return "unknown"
}

// CacheBytes returns the detected L1D/L2/L3 sizes in bytes. A level the
// platform does not report comes back as 0; consumers must treat sizes as
// advisory only.
func CacheBytes() (l1d, l2, l3 int) {
	c := cpuid.CPU.Cache
	if c.L1D > 0 {
		l1d = c.L1D
	}
	if c.L2 > 0 {
		l2 = c.L2
	}
	if c.L3 > 0 {
		l3 = c.L3
	}
	return
}

// LogicalCores returns the number of logical CPUs visible to the process.
func LogicalCores() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}
