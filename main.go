// ════════════════════════════════════════════════════════════════════════════════════════════════
// Adaptive Memory Copy Benchmark - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Self-Tuning Bulk Copy Dispatcher
// Component: Main Entry Point & Run Orchestration
//
// Description:
//   Command-line front end for the copy benchmark harness. Parses the run
//   configuration, derives the iteration budget from the fixed work budget
//   when none is given, executes the run, and emits the result in the
//   requested shape (human, TSV, JSON, SQLite).
//
// Lifecycle:
//   - Phase 1: Configuration parsing and derivation
//   - Phase 2: Timed benchmark run (GC disabled inside the harness)
//   - Phase 3: Reporting and persistence
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/bench"
	"main/constants"
	"main/control"
	"main/cpuinfo"
	"main/debug"
	"main/utils"
)

// main orchestrates one benchmark invocation end to end.
func main() {
	var (
		size         = flag.Uint64("size", constants.DefaultCopySize, "bytes to copy on every iteration")
		iterations   = flag.Uint64("iterations", 0, "number of iterations (0 = derive from the work budget)")
		threads      = flag.Int("threads", 1, "number of copying workers")
		distribution = flag.Int("distribution", 4, "chunk size distribution class (1..5)")
		variant      = flag.Uint64("variant", 0, "kernel tag to benchmark (0 = self-tuning dispatcher)")
		seed         = flag.Uint64("seed", 0, "chunk generator seed (0 = default)")
		tsv          = flag.Bool("tsv", false, "print result as one tab-separated line")
		jsonOut      = flag.Bool("json", false, "print result as JSON")
		dbPath       = flag.String("db", "", "append result to this SQLite database")
	)
	flag.Parse()

	// PHASE 1: Configuration. The iteration count defaults to a fixed work
	// budget divided by the copy size, so every size runs for comparable
	// wall time. The 16-byte chunk class copies an order of magnitude
	// slower per byte and gets a tenth of the budget.
	its := *iterations
	if its == 0 {
		if *size == 0 {
			panic("size must be positive")
		}
		its = constants.DefaultWorkBudget / *size
		if *distribution == 1 {
			its /= 10
		}
		if its == 0 {
			its = 1
		}
	}

	debug.DropMessage("INIT", "host "+cpuinfo.Brand()+
		", "+utils.Itoa(cpuinfo.LogicalCores())+" cores")

	setupSignalHandling()

	// PHASE 2: Timed run.
	res, err := bench.Run(bench.Config{
		Size:         *size,
		Iterations:   its,
		Threads:      *threads,
		Distribution: *distribution,
		Variant:      *variant,
		Seed:         *seed,
	})
	if err != nil {
		debug.DropError("BENCH", err)
		os.Exit(1)
	}

	// PHASE 3: Reporting.
	switch {
	case *tsv:
		fmt.Println(res.TSVLine())
	case *jsonOut:
		blob, err := res.JSON()
		if err != nil {
			debug.DropError("JSON", err)
			os.Exit(1)
		}
		os.Stdout.Write(blob)
		os.Stdout.Write([]byte{'\n'})
	default:
		fmt.Println(res.HumanLine())
	}

	if *dbPath != "" {
		if err := res.Store(*dbPath, time.Now().Unix()); err != nil {
			debug.DropError("DB", err)
			os.Exit(1)
		}
	}
}

// setupSignalHandling aborts the run on SIGINT/SIGTERM: workers observe the
// stop flag at the next pass boundary and the harness reports interruption.
func setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		debug.DropMessage("SIGNAL", "Received interrupt, stopping run...")
		control.Shutdown()
		control.ShutdownWG.Wait()
		debug.DropMessage("SIGNAL", "Run stopped")
		os.Exit(1)
	}()
}
