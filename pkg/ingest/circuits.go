package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParsedCircuit is one line of the optional circuits file:
// <guard> <middle> <exit> [client [start_sec [end_sec]]]. Client is empty
// for an unscoped circuit; Start/End are ms ticks (§6), zero meaning open
// on that side, and are only meaningful when Client is non-empty.
type ParsedCircuit struct {
	Guard, Middle, Exit string
	Client               string
	Start, End            int64
}

// ParseCircuits reads the circuits file at path. Blank lines are ignored;
// lines missing the three relay fields, or with an unparsable optional
// time bound, produce a Warning and are skipped (§7).
func ParseCircuits(path string) ([]ParsedCircuit, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrOpenFile, path, err)
	}
	defer f.Close()

	var (
		circuits []ParsedCircuit
		warnings []Warning
	)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			warnings = append(warnings, warn(path, lineNo, "expected <guard> <middle> <exit> [client [start_sec [end_sec]]], got %q", line))
			continue
		}
		circ := ParsedCircuit{Guard: fields[0], Middle: fields[1], Exit: fields[2]}
		if len(fields) >= 4 {
			circ.Client = fields[3]
		}
		if len(fields) >= 5 {
			startSec, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				warnings = append(warnings, warn(path, lineNo, "invalid start_sec %q", fields[4]))
				continue
			}
			circ.Start = int64(startSec * 1000)
		}
		if len(fields) >= 6 {
			endSec, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				warnings = append(warnings, warn(path, lineNo, "invalid end_sec %q", fields[5]))
				continue
			}
			circ.End = int64(endSec * 1000)
		}
		circuits = append(circuits, circ)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrScanFile, path, err)
	}
	return circuits, warnings, nil
}
