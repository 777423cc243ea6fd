// export.go — Result reporting and persistence
//
// Three output shapes mirror three consumers: a tab-separated line for
// bulk collection scripts, a human-readable line for interactive runs,
// and JSON for tooling. SQLite persistence keeps runs and their retained
// per-pass samples queryable across sessions; a run and its samples land
// in one transaction so a crash never leaves orphaned sample rows.

package bench

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sugawarayuuta/sonnet"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at   INTEGER NOT NULL,
	name         TEXT    NOT NULL,
	size         INTEGER NOT NULL,
	iterations   INTEGER NOT NULL,
	threads      INTEGER NOT NULL,
	distribution INTEGER NOT NULL,
	variant      INTEGER NOT NULL,
	elapsed_ns   INTEGER NOT NULL,
	gb_per_sec   REAL    NOT NULL,
	tuned_kernel TEXT,
	cpu          TEXT
);
CREATE TABLE IF NOT EXISTS samples (
	run_id     INTEGER NOT NULL REFERENCES runs(id),
	tag        INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	bytes      INTEGER NOT NULL
);`

// TSVLine renders the run as one tab-separated record:
// name, size, iterations, threads, distribution, variant, elapsed_ns.
func (r *Result) TSVLine() string {
	return r.Name +
		"\t" + strconv.FormatUint(r.Size, 10) +
		"\t" + strconv.FormatUint(r.Iterations, 10) +
		"\t" + strconv.Itoa(r.Threads) +
		"\t" + strconv.Itoa(r.Distribution) +
		"\t" + strconv.FormatUint(r.Variant, 10) +
		"\t" + strconv.FormatUint(r.ElapsedNs, 10)
}

// HumanLine renders the run for interactive use.
func (r *Result) HumanLine() string {
	line := fmt.Sprintf("%s: %d threads, size: %d, distribution %d, processed in %.3f sec, %.3f GB/sec",
		r.Name, r.Threads, r.Size, r.Distribution, float64(r.ElapsedNs)/1e9, r.GBPerSec)
	if r.TunedKernel != "" {
		line += " (settled on " + r.TunedKernel + ")"
	}
	return line
}

// JSON renders the run as a JSON object.
func (r *Result) JSON() ([]byte, error) {
	return sonnet.Marshal(r)
}

// Store appends the run and its retained samples to the SQLite database at
// path, creating the schema on first use. createdAt is a Unix timestamp.
func (r *Result) Store(path string, createdAt int64) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("bench: schema setup failed: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (created_at, name, size, iterations, threads,
			distribution, variant, elapsed_ns, gb_per_sec, tuned_kernel, cpu)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt, r.Name, int64(r.Size), int64(r.Iterations), r.Threads,
		r.Distribution, int64(r.Variant), int64(r.ElapsedNs), r.GBPerSec,
		r.TunedKernel, r.CPU)
	if err != nil {
		return fmt.Errorf("bench: run insert failed: %v", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO samples (run_id, tag, elapsed_ns, bytes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range r.samples {
		if _, err := stmt.Exec(runID, int64(s.Tag), int64(s.Elapsed), int64(s.Size)); err != nil {
			return fmt.Errorf("bench: sample insert failed: %v", err)
		}
	}

	return tx.Commit()
}
