package reporter

import "errors"

var (
	// ErrMakeOutputDir is returned when the reporter's output directory
	// cannot be created.
	ErrMakeOutputDir = errors.New("reporter: create output directory")
	// ErrWriteReport is returned when a round or per-client file cannot
	// be written. Per §7, I/O failures are fatal.
	ErrWriteReport = errors.New("reporter: write report file")
)
