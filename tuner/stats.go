// stats.go — Per-kernel timing accumulators
//
// One stats block per registered kernel. The three counters are independent
// relaxed atomics: concurrent explorers may interleave updates and the
// reoptimizer may read a torn combination across fields. That is fine — the
// score only steers kernel choice, it is not an exact measurement.

package tuner

import (
	"math"
	"sync/atomic"
)

// stats aggregates {time, bytes, count} for one kernel. All fields are
// seeded to 1 at construction and the decay floor keeps them ≥ 1 forever,
// so score() is always well-defined.
type stats struct {
	time  atomic.Uint64 // accumulated ticks across accepted samples
	bytes atomic.Uint64 // accumulated bytes across accepted samples
	count atomic.Uint64 // number of accepted samples
	_     [5]uint64     // pad to a full cache line; trackers never share one
}

// seed initializes the accumulators to the floor value.
func (s *stats) seed() {
	s.time.Store(1)
	s.bytes.Store(1)
	s.count.Store(1)
}

// record folds one timing sample into the accumulators, but only when the
// sample is plausible: a copy can't take more ticks than bytes moved unless
// the measurement was disturbed (preemption, interrupt, counter wrap), so
// elapsed ≥ size samples are dropped on the floor. Best effort — the filter
// can admit bad samples and reject valid ones; decay limits the damage.
//
//go:nosplit
func (s *stats) record(elapsed, size uint64) {
	if elapsed < size {
		s.count.Add(1)
		s.bytes.Add(size)
		s.time.Add(elapsed)
	}
}

// score returns the comparable cost of this kernel; less is better.
// mean ticks/byte plus one standard-error-like term: mean/sqrt(count).
// The term is ADDED, so a thinly sampled kernel scores worse than an
// equally fast well-sampled one. Deliberately conservative — do not
// "fix" this into an optimistic upper-confidence bound.
func (s *stats) score() float64 {
	t := float64(s.time.Load())
	b := float64(s.bytes.Load())
	c := float64(s.count.Load())

	mean := t / b
	sigma := mean / math.Sqrt(c)

	return mean + sigma
}

// decay halves every accumulator with a floor of 1, bounding growth and
// weighting the score toward recent windows. Runs on all trackers at each
// reoptimization so scores stay comparable.
//
//go:nosplit
func (s *stats) decay() {
	s.time.Store(1 + s.time.Load()/2)
	s.bytes.Store(1 + s.bytes.Load()/2)
	s.count.Store(1 + s.count.Load()/2)
}

// snapshot returns the current raw counters. Diagnostics and tests only.
func (s *stats) snapshot() (time, bytes, count uint64) {
	return s.time.Load(), s.bytes.Load(), s.count.Load()
}
