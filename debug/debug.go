// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path diagnostic logging helper (zero-alloc)
//
// Purpose:
//   - Logs infrequent diagnostic paths without introducing heap pressure.
//   - Used only in cold paths: reoptimizer kernel announcements, harness
//     setup/teardown, database and validation errors.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - Writes go straight to stderr through utils.PrintWarning.
//
// ⚠️ Never invoke in the copy hot loop — the exploit path must stay silent.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs error messages with a custom alloc-free print strategy.
// It writes directly to stderr (file descriptor 2), keeping heap pressure out
// of GC-suppressed benchmark phases.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		msg := prefix + ": " + err.Error() + "\n"
		utils.PrintWarning(msg)
	} else {
		msg := prefix + "\n"
		utils.PrintWarning(msg)
	}
}

// DropMessage logs diagnostic messages with the same zero-allocation print
// strategy. The reoptimizer uses it to announce each newly selected kernel
// tag; the harness uses it for phase transitions and configuration echoes.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	msg := prefix + ": " + message + "\n"
	utils.PrintWarning(msg)
}
