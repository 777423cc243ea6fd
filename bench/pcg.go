// pcg.go — Chunk-size generation
//
// Workers slice their segment into pseudo-random chunks so the measured
// kernels see realistic, non-repeating copy sizes instead of one fixed
// length. The generator is the 64/32 xsh-rs multiplicative-congruential
// PCG variant: one multiply and one variable shift per draw, no branch,
// no allocation. Every pass reseeds with the same constant, so two runs
// of the same configuration copy an identical chunk sequence.

package bench

const (
	pcgMultiplier  = 6364136223846793005
	pcgDefaultSeed = 0xcafef00dd15ea5e5
)

// pcg32 holds the 64-bit generator state. MCG advancement requires the
// state to stay odd; seeding forces the low bits accordingly.
type pcg32 struct {
	state uint64
}

func newPCG32(seed uint64) pcg32 {
	if seed == 0 {
		seed = pcgDefaultSeed
	}
	return pcg32{state: seed | 3}
}

// next draws one 32-bit value: output from the pre-advance state via
// xorshift-high / random-shift, then multiplicative state advance.
//
//go:nosplit
func (g *pcg32) next() uint32 {
	x := g.state
	g.state = x * pcgMultiplier
	count := uint(x >> 61)
	x ^= x >> 22
	return uint32(x >> (22 + count))
}

// chunkCap maps a distribution selector to the exclusive upper bound of
// the uniform chunk-size draw. The five classes span single cache lines
// up to megabyte bursts.
func chunkCap(distribution int) (uint32, error) {
	switch distribution {
	case 1:
		return 16, nil
	case 2:
		return 256, nil
	case 3:
		return 4096, nil
	case 4:
		return 65536, nil
	case 5:
		return 1048576, nil
	}
	return 0, errDistribution
}
