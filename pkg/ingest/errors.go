package ingest

import "errors"

var (
	// ErrOpenFile is returned when a required input file cannot be opened.
	ErrOpenFile = errors.New("ingest: open input file")
	// ErrScanFile is returned when reading an input file fails mid-scan.
	ErrScanFile = errors.New("ingest: scan input file")
)
