// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: tuner.go — Self-tuning copy dispatcher
//
// Purpose:
//   - Routes each bulk copy to one of the registered kernels, continuously
//     re-ranking them from live timing measurements instead of static
//     heuristics.
//   - Implements a decaying-epsilon explore/exploit policy quantized over a
//     256-call cycle, a Murmur-avalanche kernel sampler, and a periodic
//     reoptimizer that republishes the cheapest kernel.
//
// Concurrency model:
//   - Any number of goroutines may call Copy concurrently. No locks, no
//     blocking: every shared field is its own atomic with no cross-field
//     consistency, and readers tolerate approximate counters.
//   - The selected kernel is published as an INDEX into the fixed variant
//     array, so an exploit call is exactly one atomic load plus the copy.
//
// Cost budget:
//   - Exploit path: counter bump + compare + atomic index load.
//   - Explore path: one extra avalanche multiply, two counter reads and the
//     tracker update — still trivial next to the copy it measures.
//
// ⚠️ Statistics move ONLY on explore calls. The steady-state hot path never
//    touches a tracker.
// ─────────────────────────────────────────────────────────────────────────────

package tuner

import (
	"math"
	"sync/atomic"

	"main/constants"
	"main/debug"
	"main/kernels"
	"main/utils"
)

// variant pairs one kernel with its tracker. The stats block carries its own
// cache-line padding, so adjacent variants never false-share tracker words.
type variant struct {
	fn    kernels.Fn
	tag   uint64
	name  string
	stats stats
}

// Tuner is the dispatcher state. Construct one per independent copy domain;
// there is no package-level singleton, which keeps unit tests isolated and
// lets a process run several tuners with different kernel sets.
type Tuner struct {
	// Hot scheduling fields, each isolated on its own cache line: every
	// call touches calls/threshold/selected, and explorers hammer
	// explorations from multiple cores.
	calls atomic.Uint64 // total Copy invocations (exploit + explore)
	_     [7]uint64

	explorations atomic.Uint64 // explore calls in the current window
	_            [7]uint64

	// threshold is the exploit probability in 1/256ths: a call exploits
	// when callCount mod 256 < threshold. 0 until the first
	// reoptimization (warm-up: pure exploration), then climbs toward
	// ThresholdMax as the residual exploration probability shrinks.
	threshold atomic.Uint32

	// selected indexes variants; always a valid, previously-published
	// index (0 = baseline runtime kernel before the first window closes).
	selected atomic.Uint32
	_        [6]uint64

	variants []variant

	// now abstracts the cycle counter so tests can drive deterministic
	// clocks; production tuners always use ticks.
	now func() uint32
}

// New builds a tuner over a fixed, ordered kernel set. The set is captured
// once and never mutated; an empty set is a programming error and fails
// fast here rather than corrupting the first Copy.
func New(ks []kernels.Kernel) *Tuner {
	if len(ks) == 0 {
		panic("tuner: empty kernel set")
	}
	t := &Tuner{
		variants: make([]variant, len(ks)),
		now:      ticks,
	}
	for i, k := range ks {
		v := &t.variants[i]
		v.fn = k.Fn
		v.tag = k.Tag
		v.name = k.Name
		v.stats.seed()
	}
	return t
}

// Copy dispatches one bulk copy. Semantics match the kernel contract:
// min(len(dst), len(src)) bytes move from src to dst and the count is
// returned unchanged from the invoked kernel.
//
//go:nosplit
func (t *Tuner) Copy(dst, src []byte) int {
	n := t.calls.Add(1) - 1

	if n&(constants.ProbabilityBuckets-1) < uint64(t.threshold.Load()) {
		// Exploitation mode: single atomic load, no bookkeeping.
		return t.variants[t.selected.Load()].fn(dst, src)
	}

	// Exploration mode.
	return t.explore(dst, src)
}

// explore samples one kernel pseudo-randomly, measures it, and feeds the
// sample to that kernel's tracker. Closing the 256-exploration window
// triggers the reoptimizer; the equality test means exactly one concurrent
// explorer fires it per window.
func (t *Tuner) explore(dst, src []byte) int {
	ec := t.explorations.Add(1)

	v := &t.variants[utils.Mix64(ec)%uint64(len(t.variants))]

	size := uint64(min(len(dst), len(src)))

	t1 := t.now()
	n := v.fn(dst, src)
	elapsed := t.now() - t1 // uint32 arithmetic: wrap yields a huge value the filter rejects

	v.stats.record(uint64(elapsed), size)

	if ec == constants.ExplorationsPerWindow {
		t.reoptimize()
	}

	return n
}

// reoptimize recomputes the exploit threshold, republishes the cheapest
// kernel, and decays every tracker. Selection uses pre-decay scores; decay
// runs inside the same scan so all trackers shrink identically.
func (t *Tuner) reoptimize() {
	// Shrink the REMAINING exploration probability by 1.5× per window.
	// The ThresholdMax clamp leaves at least one exploring bucket per
	// 256-call cycle forever, so the tuner can never lock in permanently.
	p := 1.0 - float64(t.threshold.Load())/constants.ProbabilityBuckets
	p /= 1.5

	thr := uint32(constants.ProbabilityBuckets * (1.0 - p))
	if thr > constants.ThresholdMax {
		thr = constants.ThresholdMax
	}
	t.threshold.Store(thr)

	t.explorations.Store(0)

	best := 0
	bestScore := math.Inf(1)
	for i := range t.variants {
		s := t.variants[i].stats.score()
		t.variants[i].stats.decay()

		if s < bestScore {
			bestScore = s
			best = i
		}
	}
	t.selected.Store(uint32(best))

	debug.DropMessage("TUNE", t.variants[best].name+" tag="+utils.Itoa(int(t.variants[best].tag)))
}

// SelectedTag returns the tag of the currently published kernel.
// Diagnostics and reporting only; never on the copy path.
func (t *Tuner) SelectedTag() uint64 {
	return t.variants[t.selected.Load()].tag
}

// SelectedName returns the name of the currently published kernel.
func (t *Tuner) SelectedName() string {
	return t.variants[t.selected.Load()].name
}

// Threshold returns the current exploit threshold in 1/256ths.
func (t *Tuner) Threshold() uint32 {
	return t.threshold.Load()
}

// Calls returns the total number of Copy invocations so far.
func (t *Tuner) Calls() uint64 {
	return t.calls.Load()
}
