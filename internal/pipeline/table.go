package pipeline

import (
	"time"
)

// RawTable is the row-oriented form of a raw extract straight after
// ingestion. Headers still carry the source's human-readable names; cells
// that matched a missing-value placeholder hold the empty string.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// RowCount returns the number of data rows in the table
func (t *RawTable) RowCount() int {
	return len(t.Rows)
}

// Summary describes a completed pipeline run
type Summary struct {
	Rows       int       `json:"rows"`
	FirstOrder time.Time `json:"first_order"`
	LastOrder  time.Time `json:"last_order"`
}
