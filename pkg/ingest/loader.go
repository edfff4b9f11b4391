// Package ingest parses the three whitespace-separated input files (§6)
// into plain data the caller folds into a catalog.Catalog. Parsing never
// aborts a run for a single bad line: malformed input degrades to a
// Warning, in line with the error-handling principle of §7.
package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is everything ParseAll extracted from the input files, plus the
// accumulated parse warnings across all three.
type Result struct {
	Relays    []ParsedRelay
	Downloads []ParsedDownload
	Circuits  []ParsedCircuit
	Warnings  []Warning
}

// ParseAll reads the downloads and relays files, and — when circuitsPath
// is non-empty — the optional circuits file, concurrently via
// errgroup.Group: each parse is independent pure I/O with no shared
// mutable state until the results are merged here, mirroring the
// fork-join style the strategies use internally (§4.6).
func ParseAll(ctx context.Context, downloadsPath, relaysPath, circuitsPath string) (*Result, error) {
	var (
		relays       []ParsedRelay
		downloads    []ParsedDownload
		circuits     []ParsedCircuit
		relayWarn    []Warning
		downloadWarn []Warning
		circuitWarn  []Warning
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		relays, relayWarn, err = ParseRelays(relaysPath)
		return err
	})
	g.Go(func() error {
		var err error
		downloads, downloadWarn, err = ParseDownloads(downloadsPath)
		return err
	})
	if circuitsPath != "" {
		g.Go(func() error {
			var err error
			circuits, circuitWarn, err = ParseCircuits(circuitsPath)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	warnings := make([]Warning, 0, len(relayWarn)+len(downloadWarn)+len(circuitWarn))
	warnings = append(warnings, relayWarn...)
	warnings = append(warnings, downloadWarn...)
	warnings = append(warnings, circuitWarn...)

	return &Result{
		Relays:    relays,
		Downloads: downloads,
		Circuits:  circuits,
		Warnings:  warnings,
	}, nil
}
