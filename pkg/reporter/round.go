package reporter

import (
	"fmt"
	"os"

	"github.com/anonproto/circuitsim/pkg/evaluator"
	"github.com/anonproto/circuitsim/pkg/logging"
)

// WriteRound writes the genetic strategy's best assignment for round to
// <out>/round<K>.txt, one line per download: "client start end guard
// middle exit" (§4.5). bestSoFar is the best fitness across every round up
// to and including this one; fitness is this round's own best.
func (r *Reporter) WriteRound(round int, assignment evaluator.Assignment, fitness, bestSoFar float64) error {
	path := fmt.Sprintf("%s/round%d.txt", r.outDir, round)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
	}
	defer f.Close()

	for _, d := range downloadsByHandle(assignment) {
		dl := r.cat.Download(d)
		circ := r.cat.Circuit(assignment[d])
		guard, middle, exit := r.circuitFields(circ)
		if _, err := fmt.Fprintf(f, "%s %d %d %s %s %s\n", dl.Client, dl.Start, dl.End, guard, middle, exit); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
		}
	}

	r.emit(logging.EventRoundReported, fmt.Sprintf("round %d fitness %.2f", round, fitness), &logging.RoundReportedData{
		Round:     round,
		Fitness:   fitness,
		BestSoFar: bestSoFar,
	})
	return nil
}
