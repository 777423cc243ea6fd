// control.go — Global control flags for benchmark workers and the recorder
// ============================================================================
// RUN CONTROL ORCHESTRATION
// ============================================================================
//
// Control provides lightweight global signaling for coordinating the copy
// workers, the sample recorder, and signal-driven shutdown, with
// zero-allocation flag access on every polling path.
//
// Threading model:
//   • The CLI or a signal handler raises the stop flag via Shutdown()
//   • Workers and the recorder poll Stopped() inside their loops
//   • ShutdownWG tracks every background participant so the process can
//     exit only after samples in flight have been drained

package control

import (
	"sync"
	"sync/atomic"
)

var (
	// stop: 1 = initiate graceful shutdown, 0 = running.
	stop uint32

	// ShutdownWG counts background participants (workers, recorder).
	// Shutdown waits on it before letting the process exit.
	ShutdownWG sync.WaitGroup
)

// Shutdown raises the global stop flag. All polling loops observe it and
// terminate after finishing the unit of work in hand.
//
//go:nosplit
//go:inline
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// Stopped reports whether shutdown has been requested.
//
//go:nosplit
//go:inline
func Stopped() bool {
	return atomic.LoadUint32(&stop) == 1
}

// Reset clears the stop flag. Test support only; production runs never
// restart a stopped system.
func Reset() {
	atomic.StoreUint32(&stop, 0)
}
