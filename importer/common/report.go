package common

import "log"

// Reporter receives per-row diagnostics during a load. Diagnostics are
// informational only; they never affect the outcome of a run.
type Reporter interface {
	// RowSkipped is called for a data row whose field count does not match
	// its input's header count. The literal row is included so the offending
	// line can be located.
	RowSkipped(table string, row []string)
	// RowFailed is called for a well-formed row the store rejected.
	RowFailed(table string, row []string, err error)
}

// LogReporter writes diagnostics to the standard logger.
type LogReporter struct{}

var _ Reporter = LogReporter{}

func (LogReporter) RowSkipped(table string, row []string) {
	log.Printf("[LOADSQLITE] skipping row with incorrect number of fields in %s: %v", table, row)
}

func (LogReporter) RowFailed(table string, row []string, err error) {
	log.Printf("[LOADSQLITE] error inserting row into %s: %v: %v", table, row, err)
}
