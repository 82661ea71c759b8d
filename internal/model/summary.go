package model

import "time"

// RunSummary captures metrics from validating one table against one schema.
type RunSummary struct {
	RunID      string
	Schema     string
	FilePath   string
	FileSHA    string // hex SHA-256 of the input file
	RowsIn     int64
	RowsOut    int64
	RowsDrop   int64
	Violations int
	Passed     bool
	Duration   time.Duration
}
