// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global tunables for the self-tuning copy engine
//
// Purpose:
//   - Defines the fixed parameters of the explore/exploit scheduler and the
//     reoptimization cycle.
//   - Defines harness-wide sizing defaults shared by the CLI and the workers.
//
// Notes:
//   - All values are compile-time resolvable; no runtime logic lives here.
//   - Scheduler constants mirror each other: one probability bucket per call
//     slot, one reoptimization per full exploration window.
//
// ⚠️ Changing ProbabilityBuckets requires revisiting the threshold clamp in
//    the tuner — the quantization floor guarantees a residual explore rate.
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Tuning schedule ─────────────────────────────

const (
	// ProbabilityBuckets quantizes the exploit probability over a cycle of
	// calls. A call exploits when callCount mod ProbabilityBuckets falls
	// below the current threshold, so the threshold IS the probability,
	// expressed in 1/256ths. Power of two keeps the modulo a single AND.
	ProbabilityBuckets = 256

	// ThresholdMax caps the exploit threshold one bucket short of the full
	// cycle. At least one slot in every 256-call cycle therefore always
	// explores, which prevents permanent lock-in to a stale winner.
	ThresholdMax = ProbabilityBuckets - 1

	// ExplorationsPerWindow is the number of measured (exploring) calls
	// between consecutive reoptimizations. 256 samples spread over the
	// kernel set is enough to move the per-kernel means without letting a
	// slow kernel burn a noticeable share of total copy time.
	ExplorationsPerWindow = 256
)

// ───────────────────────────── Copy dispatch ───────────────────────────────

const (
	// DispatchMin is the smallest copy the adaptive engine competes for.
	// Below it the fixed baseline path wins regardless of kernel choice, so
	// the wrapper routes those calls straight to the runtime copy.
	DispatchMin = 30000
)

// ───────────────────────────── Harness sizing ──────────────────────────────

const (
	// SampleRingSize is the per-worker SPSC ring capacity for measurement
	// samples in flight between a worker and the recorder. Power of two.
	SampleRingSize = 1 << 10

	// DefaultCopySize is the per-iteration buffer size when the CLI does not
	// override it: 1 MB, large enough to leave cache on most parts.
	DefaultCopySize = 1000000

	// DefaultWorkBudget sizes the default iteration count: roughly ten
	// billion bytes of traffic per run, divided by the buffer size.
	DefaultWorkBudget = 10000000000
)
