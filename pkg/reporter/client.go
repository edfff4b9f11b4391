package reporter

import (
	"fmt"
	"os"
	"sort"

	"github.com/anonproto/circuitsim/pkg/catalog"
	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/logging"
)

// WriteFinal partitions assignment by client and writes one file per
// client to <out>/<client>.txt, lines "<start> guard,middle,exit" (§4.5).
// It emits one EventClientReported per client.
func (r *Reporter) WriteFinal(assignment evaluator.Assignment) error {
	byClient := make(map[string][]catalog.DownloadHandle)
	for _, d := range downloadsByHandle(assignment) {
		client := r.cat.Download(d).Client
		byClient[client] = append(byClient[client], d)
	}

	clients := make([]string, 0, len(byClient))
	for c := range byClient {
		clients = append(clients, c)
	}
	sort.Strings(clients)

	for _, client := range clients {
		handles := byClient[client]
		path := fmt.Sprintf("%s/%s.txt", r.outDir, client)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
		}

		var totalBytes float64
		for _, d := range handles {
			dl := r.cat.Download(d)
			circ := r.cat.Circuit(assignment[d])
			guard, middle, exit := r.circuitFields(circ)
			if _, err := fmt.Fprintf(f, "%d %s,%s,%s\n", dl.Start, guard, middle, exit); err != nil {
				f.Close()
				return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
			}
			// Nominal bandwidth*duration, not a re-run of the fair-share
			// integrator; good enough for a progress log line.
			totalBytes += float64(circ.Bandwidth) * float64(dl.End-dl.Start) / 1000.0
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
		}

		r.emit(logging.EventClientReported, fmt.Sprintf("client %s: %d downloads", client, len(handles)), &logging.ClientReportedData{
			Client:     client,
			Downloads:  len(handles),
			TotalBytes: totalBytes,
		})
	}

	return nil
}
