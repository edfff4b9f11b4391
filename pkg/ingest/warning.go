package ingest

import "fmt"

// Warning is a non-fatal parse problem: a malformed or otherwise skippable
// line in one of the three input files (§7: input-parse errors degrade
// gracefully rather than aborting the run).
type Warning struct {
	File string
	Line int
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Text)
}

func warn(file string, line int, format string, args ...interface{}) Warning {
	return Warning{File: file, Line: line, Text: fmt.Sprintf(format, args...)}
}
