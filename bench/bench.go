// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: bench.go — Multi-worker copy benchmark harness
//
// Purpose:
//   - Drives a selected copy kernel (or the self-tuning dispatcher) over a
//     shared buffer from N workers, each owning a disjoint segment and
//     copying it in pseudo-random chunks, alternating direction every pass.
//   - Streams per-pass timing samples through lock-free SPSC rings to a
//     recorder goroutine, so workers never block on bookkeeping.
//
// Lifecycle:
//   - GC is disabled for the timed region and restored afterwards.
//   - Workers poll the global stop flag once per pass; an interrupt aborts
//     the run cleanly without validating a half-written buffer.
//   - After the run the destination must carry the source fill pattern and
//     both buffers must hash to the same SHA3-256 fingerprint.
// ─────────────────────────────────────────────────────────────────────────────

package bench

import (
	"errors"
	"runtime"
	rtdebug "runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/sha3"

	"main/constants"
	"main/control"
	"main/cpuinfo"
	"main/debug"
	"main/kernels"
	"main/ring"
	"main/tuner"
	"main/utils"
)

var (
	errSize         = errors.New("bench: size must be positive")
	errIterations   = errors.New("bench: iterations must be positive")
	errThreads      = errors.New("bench: threads must be positive")
	errDistribution = errors.New("bench: distribution must be in 1..5")
	errVariant      = errors.New("bench: unknown kernel tag")
	errInterrupted  = errors.New("bench: interrupted before completion")
	errValidation   = errors.New("bench: destination does not match source pattern")
)

// sampleKeep caps how many per-pass samples are retained for persistence.
// Aggregates always cover every pass; only the raw sample log is bounded.
const sampleKeep = 1 << 16

// Config selects one benchmark run. Variant is a registry tag; zero routes
// every copy through the self-tuning dispatcher instead of a fixed kernel.
type Config struct {
	Size         uint64
	Iterations   uint64
	Threads      int
	Distribution int
	Variant      uint64
	Seed         uint64 // chunk generator seed, 0 = default constant
}

func (c Config) validate() error {
	switch {
	case c.Size == 0:
		return errSize
	case c.Iterations == 0:
		return errIterations
	case c.Threads <= 0:
		return errThreads
	}
	if _, err := chunkCap(c.Distribution); err != nil {
		return err
	}
	return nil
}

// Result is the aggregate outcome of one run.
type Result struct {
	Name         string  `json:"name"`
	Size         uint64  `json:"size"`
	Iterations   uint64  `json:"iterations"`
	Threads      int     `json:"threads"`
	Distribution int     `json:"distribution"`
	Variant      uint64  `json:"variant"`
	ElapsedNs    uint64  `json:"elapsed_ns"`
	GBPerSec     float64 `json:"gb_per_sec"`
	Passes       uint64  `json:"passes"`
	MinPassNs    uint32  `json:"min_pass_ns"`
	MaxPassNs    uint32  `json:"max_pass_ns"`
	TunedKernel  string  `json:"tuned_kernel,omitempty"`
	CPU          string  `json:"cpu"`
	Cores        int     `json:"cores"`
	CacheL1D     int     `json:"cache_l1d"`
	CacheL2      int     `json:"cache_l2"`
	CacheL3      int     `json:"cache_l3"`

	samples []ring.Sample
}

// TunedCopy wraps a tuner as a plain copy kernel. Small copies bypass the
// dispatcher entirely: below the cutoff the measurement noise exceeds the
// spread between kernels, so the baseline is used unconditionally.
func TunedCopy(tn *tuner.Tuner) kernels.Fn {
	return func(dst, src []byte) int {
		if min(len(dst), len(src)) <= constants.DispatchMin {
			return kernels.Runtime(dst, src)
		}
		return tn.Copy(dst, src)
	}
}

// chunkLoop copies one segment in generator-sized chunks. Zero-length draws
// are legal and simply advance the generator.
func chunkLoop(dst, src []byte, g *pcg32, limit uint32, fn kernels.Fn) {
	for len(dst) > 0 {
		n := int(g.next() % limit)
		if n > len(dst) {
			n = len(dst)
		}
		fn(dst[:n], src[:n])
		dst = dst[n:]
		src = src[n:]
	}
}

// Run executes one configured benchmark and returns its aggregate result.
func Run(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	chunkLimit, _ := chunkCap(cfg.Distribution)

	var (
		fn   kernels.Fn
		tag  uint64
		name string
		tn   *tuner.Tuner
	)
	if cfg.Variant == 0 {
		tn = tuner.New(kernels.Registry())
		fn = TunedCopy(tn)
		name = "tuned"
	} else {
		k, ok := kernels.ByTag(cfg.Variant)
		if !ok {
			return nil, errVariant
		}
		fn, tag, name = k.Fn, k.Tag, k.Name
	}

	debug.DropMessage("BENCH", name+" size="+utils.Itoa(int(cfg.Size))+
		" threads="+utils.Itoa(cfg.Threads)+" dist="+utils.Itoa(cfg.Distribution))

	// Source carries the validation pattern; destination is written once to
	// pre-fault every page before the timed region.
	src := make([]byte, cfg.Size)
	dst := make([]byte, cfg.Size)
	for i := range src {
		src[i] = byte(i)
	}

	rings := make([]*ring.Ring, cfg.Threads)
	for i := range rings {
		rings[i] = ring.New(constants.SampleRingSize)
	}

	// Recorder: drains every worker ring, keeps running aggregates, and
	// retains a bounded sample log for persistence.
	agg := struct {
		total  uint64
		min    uint32
		max    uint32
		passes uint64
		kept   []ring.Sample
	}{min: ^uint32(0)}

	drain := func() int {
		n := 0
		for _, r := range rings {
			for {
				s, ok := r.Pop()
				if !ok {
					break
				}
				n++
				agg.passes++
				agg.total += uint64(s.Elapsed)
				if s.Elapsed < agg.min {
					agg.min = s.Elapsed
				}
				if s.Elapsed > agg.max {
					agg.max = s.Elapsed
				}
				if len(agg.kept) < sampleKeep {
					agg.kept = append(agg.kept, s)
				}
			}
		}
		return n
	}

	var workersDone atomic.Bool
	recDone := make(chan struct{})
	control.ShutdownWG.Add(1)
	go func() {
		defer control.ShutdownWG.Done()
		defer close(recDone)
		for {
			if drain() == 0 {
				if workersDone.Load() {
					drain() // rings emptied after the done flag was raised
					return
				}
				runtime.Gosched()
			}
		}
	}()

	var interrupted atomic.Bool
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)

	prevGC := rtdebug.SetGCPercent(-1)
	start := time.Now()

	for w := 0; w < cfg.Threads; w++ {
		begin := cfg.Size * uint64(w) / uint64(cfg.Threads)
		end := cfg.Size * uint64(w+1) / uint64(cfg.Threads)
		go func(dseg, sseg []byte, r *ring.Ring) {
			defer wg.Done()
			segBytes := clamp32(uint64(len(dseg)))
			for it := uint64(0); it < cfg.Iterations; it++ {
				if control.Stopped() {
					interrupted.Store(true)
					return
				}
				g := newPCG32(cfg.Seed)
				d, s := dseg, sseg
				if it&1 == 1 {
					d, s = sseg, dseg
				}
				t0 := time.Now()
				chunkLoop(d, s, &g, chunkLimit, fn)
				el := clamp32(uint64(time.Since(t0).Nanoseconds()))

				smp := ring.Sample{Tag: tag, Elapsed: el, Size: segBytes}
				for !r.Push(smp) {
					if control.Stopped() {
						interrupted.Store(true)
						return
					}
					runtime.Gosched()
				}
			}
		}(dst[begin:end], src[begin:end], rings[w])
	}

	wg.Wait()
	elapsed := time.Since(start)
	workersDone.Store(true)
	<-recDone
	rtdebug.SetGCPercent(prevGC)

	if interrupted.Load() || control.Stopped() {
		return nil, errInterrupted
	}

	for i := range dst {
		if dst[i] != byte(i) {
			return nil, errValidation
		}
	}
	if sha3.Sum256(dst) != sha3.Sum256(src) {
		return nil, errValidation
	}

	res := &Result{
		Name:         name,
		Size:         cfg.Size,
		Iterations:   cfg.Iterations,
		Threads:      cfg.Threads,
		Distribution: cfg.Distribution,
		Variant:      cfg.Variant,
		ElapsedNs:    uint64(elapsed.Nanoseconds()),
		GBPerSec:     float64(cfg.Size) * float64(cfg.Iterations) / float64(elapsed.Nanoseconds()),
		Passes:       agg.passes,
		MinPassNs:    agg.min,
		MaxPassNs:    agg.max,
		CPU:          cpuinfo.Brand(),
		Cores:        cpuinfo.LogicalCores(),
		samples:      agg.kept,
	}
	res.CacheL1D, res.CacheL2, res.CacheL3 = cpuinfo.CacheBytes()
	if tn != nil {
		res.TunedKernel = tn.SelectedName()
	}
	return res, nil
}

// Samples returns the retained per-pass sample log.
func (r *Result) Samples() []ring.Sample {
	return r.samples
}

func clamp32(v uint64) uint32 {
	if v > 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(v)
}
