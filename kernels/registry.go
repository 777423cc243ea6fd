// registry.go — Fixed, ordered kernel registry
//
// The registry is built once at startup and never mutated afterwards: only
// which entry is "selected" changes, and that state lives in the tuner, not
// here. Index 0 is always the baseline runtime kernel so a fresh tuner has a
// sane default before its first reoptimization.

package kernels

import "main/cpuinfo"

// Kernel couples a copy primitive with its stable identity.
type Kernel struct {
	Tag  uint64 // stable identifier, stable across builds and platforms
	Name string // human-readable name for reports and diagnostics
	Fn   Fn     // the primitive itself
}

// Registry returns the ordered candidate set for this host. Membership is
// capability-gated: the cache-line unroll only registers where a wide vector
// unit lets the backend keep up with it. Order is fixed per process; the
// tuner publishes selections as indices into this slice.
func Registry() []Kernel {
	ks := []Kernel{
		{Tag: 1, Name: "runtime", Fn: Runtime},
		{Tag: 2, Name: "trivial", Fn: Trivial},
		{Tag: 6, Name: "words8", Fn: Words},
		{Tag: 7, Name: "words16", Fn: Unrolled2},
		{Tag: 8, Name: "words32", Fn: Unrolled4},
	}
	if cpuinfo.WideVectors() {
		ks = append(ks, Kernel{Tag: 9, Name: "words64", Fn: Unrolled8})
	}
	ks = append(ks,
		Kernel{Tag: 12, Name: "overlap", Fn: Overlap},
		Kernel{Tag: 24, Name: "backward", Fn: Backward},
	)
	return ks
}

// ByTag resolves a kernel by its stable tag, for CLI variant selection.
func ByTag(tag uint64) (Kernel, bool) {
	for _, k := range Registry() {
		if k.Tag == tag {
			return k, true
		}
	}
	return Kernel{}, false
}
